package model

import "strconv"

// Setting is a small key/value row consumed by the order engine (tax config)
// and the invoice builder (store identity).
type Setting struct {
	Key   string `gorm:"type:varchar(50);primaryKey" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}

const (
	SettingStoreName  = "store_name"
	SettingUPIID      = "upi_id"
	SettingGSTEnabled = "gst_enabled"
	SettingGSTPercent = "gst_percent"
)

var DefaultSettings = []Setting{
	{Key: SettingStoreName, Value: "SmartPOS Store"},
	{Key: SettingUPIID, Value: "merchant@okaxis"},
	{Key: SettingGSTEnabled, Value: "true"},
	{Key: SettingGSTPercent, Value: "18"},
}

// TaxConfig drives the order engine's tax computation.
type TaxConfig struct {
	Enabled bool    `json:"enabled"`
	Percent float64 `json:"percent"`
}

// TaxConfigFrom assembles a TaxConfig from raw settings values.
func TaxConfigFrom(enabled, percent string) TaxConfig {
	en, _ := strconv.ParseBool(enabled)
	pct, err := strconv.ParseFloat(percent, 64)
	if err != nil {
		pct = 0
	}
	return TaxConfig{Enabled: en, Percent: pct}
}
