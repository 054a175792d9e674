package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/datacorp/analytics-mcp/internal/analytics"
)

// Resource URI schemes in the catalog.
const (
	companyConfigURI = "resource://company/config"
	reportPrefix     = "report://"
	databasePrefix   = "database://"
)

func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		URI:         companyConfigURI,
		Name:        "company_config",
		Description: "Company configuration and profile",
		MIMEType:    "application/json",
	}, s.readCompanyConfig)

	s.mcp.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: reportPrefix + "{report_type}",
		Name:        "report",
		Description: "Business reports by type (quarterly, annual, compliance)",
		MIMEType:    "text/plain",
	}, s.readReport)

	s.mcp.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: databasePrefix + "{table_name}",
		Name:        "database_table",
		Description: "Database tables (customers, products, transactions)",
		MIMEType:    "application/json",
	}, s.readTable)
}

func (s *Server) readCompanyConfig(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	data, err := json.Marshal(analytics.Company())
	if err != nil {
		return nil, fmt.Errorf("marshal company config: %w", err)
	}

	s.logger.Info("read company config")
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) readReport(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	reportType := strings.TrimPrefix(req.Params.URI, reportPrefix)

	s.logger.Info("read report", "type", reportType)
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     analytics.Report(reportType),
		}},
	}, nil
}

func (s *Server) readTable(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	tableName := strings.TrimPrefix(req.Params.URI, databasePrefix)

	data, err := json.Marshal(analytics.QueryTable(tableName))
	if err != nil {
		return nil, fmt.Errorf("marshal table %s: %w", tableName, err)
	}

	s.logger.Info("queried database table", "table", tableName)
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
