package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/openshelf/bookstore-api/pkg/mongo"
)

// AIReportResponse represents the structure of AI-generated reports
type AIReportResponse struct {
	Status      string     `json:"status"`
	Data        ReportData `json:"data"`
	GeneratedAt time.Time  `json:"generated_at"`
	AIEnabled   bool       `json:"ai_enabled"`
}

type ReportData struct {
	RawData    interface{} `json:"raw_data"`
	AIInsights string      `json:"ai_insights,omitempty"`
	Summary    string      `json:"summary"`
	Error      string      `json:"error,omitempty"`
}

// GenerateSalesReport generates AI-powered insights from order analytics
// over the trailing number of days.
func GenerateSalesReport(ctx context.Context, days int) (*AIReportResponse, error) {
	salesData, err := mongo.GetSalesAnalytics(ctx, days)
	if err != nil {
		return &AIReportResponse{
			Status:      "error",
			Data:        ReportData{Error: "Failed to fetch sales data: " + err.Error()},
			GeneratedAt: time.Now(),
			AIEnabled:   IsEnabled(),
		}, err
	}

	response := &AIReportResponse{
		Status:      "success",
		GeneratedAt: time.Now(),
		AIEnabled:   IsEnabled(),
		Data: ReportData{
			RawData: salesData,
			Summary: "Sales data retrieved successfully",
		},
	}

	if IsEnabled() {
		userPrompt := formatSalesDataPrompt(salesData, days)
		aiInsights, err := generateCompletion(ctx, SalesReportSystemPrompt, userPrompt)
		if err != nil {
			response.Data.Error = "AI analysis failed: " + err.Error()
		} else {
			response.Data.AIInsights = aiInsights
			response.Data.Summary = "AI-generated sales insights and recommendations"
		}
	} else {
		response.Data.Summary = "Raw sales data (AI insights unavailable)"
	}

	return response, nil
}

// GenerateInventoryReport generates AI-powered restock analysis for titles
// at or below the given stock threshold.
func GenerateInventoryReport(ctx context.Context, threshold int) (*AIReportResponse, error) {
	lowStock, err := mongo.GetLowStockBooks(ctx, threshold)
	if err != nil {
		return &AIReportResponse{
			Status:      "error",
			Data:        ReportData{Error: "Failed to fetch inventory data: " + err.Error()},
			GeneratedAt: time.Now(),
			AIEnabled:   IsEnabled(),
		}, err
	}

	response := &AIReportResponse{
		Status:      "success",
		GeneratedAt: time.Now(),
		AIEnabled:   IsEnabled(),
		Data: ReportData{
			RawData: lowStock,
			Summary: "Inventory status data retrieved successfully",
		},
	}

	if IsEnabled() {
		userPrompt := formatInventoryDataPrompt(lowStock, threshold)
		aiInsights, err := generateCompletion(ctx, InventoryReportSystemPrompt, userPrompt)
		if err != nil {
			response.Data.Error = "AI analysis failed: " + err.Error()
		} else {
			response.Data.AIInsights = aiInsights
			response.Data.Summary = "AI-generated inventory insights and recommendations"
		}
	} else {
		response.Data.Summary = "Raw inventory data (AI insights unavailable)"
	}

	return response, nil
}

func formatSalesDataPrompt(salesData interface{}, days int) string {
	jsonData, _ := json.MarshalIndent(salesData, "", "  ")
	return fmt.Sprintf(`Analyze the following bookstore sales data for the last %d days and provide business insights:

%s

Amounts are in cents. Please provide:
1. Key performance highlights and trends
2. Best-selling titles worth promoting or restocking
3. Areas of concern or opportunity
4. Actionable next steps for the management team`, days, string(jsonData))
}

func formatInventoryDataPrompt(inventoryData interface{}, threshold int) string {
	jsonData, _ := json.MarshalIndent(inventoryData, "", "  ")
	return fmt.Sprintf(`Analyze the following titles at or below %d units in stock and provide operational insights:

%s

Please provide:
1. Immediate restock actions required
2. Demand patterns across the affected titles
3. Suggested reorder quantities`, threshold, string(jsonData))
}
