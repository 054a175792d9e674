package analytics

import (
	"fmt"
	"strings"
)

// CompanyConfig is the static resource://company/config payload.
type CompanyConfig struct {
	Company      string   `json:"company"`
	Founded      int      `json:"founded"`
	Headquarters string   `json:"headquarters"`
	Departments  []string `json:"departments"`
	Employees    int      `json:"employees"`
	MainProduct  string   `json:"main_product"`
	Website      string   `json:"website"`
}

// Company returns the fixed company configuration.
func Company() CompanyConfig {
	return CompanyConfig{
		Company:      "DataCorp Analytics",
		Founded:      2015,
		Headquarters: "San Francisco, CA",
		Departments:  []string{"Sales", "Engineering", "Marketing", "Operations", "Finance"},
		Employees:    250,
		MainProduct:  "Enterprise Analytics Platform",
		Website:      "https://datacorp-analytics.com",
	}
}

// ReportTypes lists the valid report identifiers in catalog order.
func ReportTypes() []string {
	return []string{"quarterly", "annual", "compliance"}
}

var reports = map[string]string{
	"quarterly": `Q4 2024 Performance Review
===========================
Revenue: $379,501.25
Growth: +15.8% YoY
Key Highlights:
- AMERICAS region exceeded targets by 12%
- New enterprise customers: +45
- Customer retention: 98.5%
- NPS Score: 72`,
	"annual": `2024 Annual Report
==================
Total Revenue: $1,489,045.00
Growth: +14.2% YoY
Regions:
- AMERICAS: $483,001.25 (32.4%)
- APAC: $378,500.25 (25.4%)
- EMEA: $270,543.50 (18.2%)
Key Achievements:
- 465 new customers
- 98.2% customer satisfaction
- 3 major product releases`,
	"compliance": `2024 Compliance Audit Report
=============================
Status: PASSED
Date: 2024-12-01
Auditor: Big Four Audit Firm
Findings:
- SOC 2 Type II Certified
- GDPR Compliant
- Data Security: Excellent
- Financial Controls: Satisfactory
Recommendations: None`,
}

// Report returns the text of the named report, or a descriptive "not
// found" message listing the valid alternatives. Never faults.
func Report(reportType string) string {
	text, ok := reports[reportType]
	if !ok {
		return fmt.Sprintf("Report '%s' not found. Available: %s",
			reportType, strings.Join(ReportTypes(), ", "))
	}
	return text
}

// TableNames lists the valid database table identifiers in catalog order.
func TableNames() []string {
	return []string{"customers", "products", "transactions"}
}

var tables = map[string][]map[string]any{
	"customers": {
		{"id": 1, "name": "Acme Corp", "region": "AMERICAS", "mrr": 5000},
		{"id": 2, "name": "Tech Industries", "region": "EMEA", "mrr": 3500},
		{"id": 3, "name": "Innovation Labs", "region": "APAC", "mrr": 4200},
	},
	"products": {
		{"id": 1, "name": "Analytics Pro", "price": 99, "tier": "professional"},
		{"id": 2, "name": "Enterprise Suite", "price": 499, "tier": "enterprise"},
		{"id": 3, "name": "Analytics Starter", "price": 29, "tier": "starter"},
	},
	"transactions": {
		{"id": 1, "date": "2024-12-01", "amount": 15000, "type": "sale"},
		{"id": 2, "date": "2024-12-02", "amount": 8500, "type": "refund"},
		{"id": 3, "date": "2024-12-03", "amount": 22000, "type": "sale"},
	},
}

// QueryTable returns the rows of the named table. Unknown tables yield
// a one-element error list rather than a fault.
func QueryTable(tableName string) []map[string]any {
	rows, ok := tables[tableName]
	if !ok {
		return []map[string]any{
			{"error": fmt.Sprintf("Table '%s' not found", tableName)},
		}
	}
	return rows
}
