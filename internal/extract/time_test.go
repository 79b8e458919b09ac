package extract

import (
	"testing"
	"time"
)

func TestPayTime(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local)
	tests := []struct {
		name string
		text string
		want time.Time
	}{
		{
			"domestic long form",
			"支付时间 2024年3月15日 12:30:45",
			time.Date(2024, 3, 15, 12, 30, 45, 0, time.Local),
		},
		{
			"dash without seconds",
			"2024-03-15 12:30",
			time.Date(2024, 3, 15, 12, 30, 0, 0, time.Local),
		},
		{
			"slash form",
			"2024/3/5 08:05:09",
			time.Date(2024, 3, 5, 8, 5, 9, 0, time.Local),
		},
		{
			"dot form",
			"2024.03.15 12:30",
			time.Date(2024, 3, 15, 12, 30, 0, 0, time.Local),
		},
		{
			"year-less domestic assumes current year",
			"3月15日 12:30",
			time.Date(2024, 3, 15, 12, 30, 0, 0, time.Local),
		},
		{
			"year-less dash assumes current year",
			"到账 03-15 12:30",
			time.Date(2024, 3, 15, 12, 30, 0, 0, time.Local),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PayTime(tt.text, now)
			if !ok {
				t.Fatalf("PayTime(%q) found nothing", tt.text)
			}
			if got != tt.want.Unix() {
				t.Errorf("PayTime(%q) = %d, want %d", tt.text, got, tt.want.Unix())
			}
		})
	}
}

func TestPayTimeRejectsInvalid(t *testing.T) {
	now := time.Now()
	for _, text := range []string{
		"",
		"2024年2月30日 12:30",
		"2024-03-15 25:61",
		"单号 20240315123045",
	} {
		if got, ok := PayTime(text, now); ok {
			t.Errorf("PayTime(%q) = %d, want no timestamp", text, got)
		}
	}
}
