package models

// ============================================================================
// CHART CONFIG
// Optional fragment of a chat answer. Only present when the model's validated
// response carried one.
// ============================================================================

const (
	ChartTypePie = "pie"
	ChartTypeBar = "bar"
)

type ChartDataPoint struct {
	Name  string  `json:"name" validate:"required"`
	Value float64 `json:"value"`
	Fill  string  `json:"fill,omitempty"` // optional hex color
}

type ChartConfig struct {
	Type       string           `json:"type" validate:"required,oneof=pie bar"`
	Data       []ChartDataPoint `json:"data" validate:"required,min=1,dive"`
	Title      string           `json:"title,omitempty"`
	XAxisLabel string           `json:"xAxisLabel,omitempty"`
	YAxisLabel string           `json:"yAxisLabel,omitempty"`
}
