package api

import (
	"context"
	"fmt"
	"mime"
	"net/http"

	"github.com/labmall/storefront/internal/domain"
)

func (c *Client) Reports(ctx context.Context, page domain.PageQuery) (*domain.Page[domain.Report], error) {
	var out domain.Page[domain.Report]
	if err := c.get(ctx, "/reports/list", pageValues(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DownloadReport fetches the report file of an order as raw bytes.
func (c *Client) DownloadReport(ctx context.Context, orderID int64) (*domain.ReportFile, error) {
	body, contentType, err := c.doer.DoRaw(ctx, http.MethodGet, prefix+"/reports/"+id(orderID)+"/download", nil)
	if err != nil {
		return nil, err
	}
	return &domain.ReportFile{
		ContentType: contentType,
		FileName:    reportFileName(orderID, contentType),
		Body:        body,
	}, nil
}

func reportFileName(orderID int64, contentType string) string {
	ext := ".pdf"
	if mt, _, err := mime.ParseMediaType(contentType); err == nil && mt != "application/pdf" {
		if exts, _ := mime.ExtensionsByType(mt); len(exts) > 0 {
			ext = exts[0]
		}
	}
	return fmt.Sprintf("report_%d%s", orderID, ext)
}

func (c *Client) SampleStatus(ctx context.Context, orderID int64) (*domain.SampleStatus, error) {
	var out domain.SampleStatus
	if err := c.get(ctx, "/samples/"+id(orderID)+"/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
