package resolve

import (
	"testing"

	"github.com/hanwen-zhu/billsnap/constants"
	"github.com/hanwen-zhu/billsnap/internal/entity"
)

func TestTagResolvePlatform(t *testing.T) {
	r := NewTagResolver(nil, CreationSimilarity)
	in := Input{
		Receipt:  entity.ParsedReceipt{Platform: constants.PlatformWeChat},
		Snapshot: testSnapshot(),
	}
	id, ok := r.Resolve(in, "")
	if !ok || id != "t-wechat" {
		t.Errorf("Resolve = (%q, %v), want the platform tag", id, ok)
	}
}

func TestTagResolveHistory(t *testing.T) {
	r := NewTagResolver(nil, CreationSimilarity)
	in := Input{
		Receipt:  entity.ParsedReceipt{Merchant: "好利来蛋糕店NO2"},
		Snapshot: testSnapshot(),
		History: []entity.HistoryRecord{
			{Merchant: "好利来蛋糕店", CategoryID: "c-dining", TagID: ""},
			{Merchant: "好利来蛋糕店", CategoryID: "c-dining", TagID: "t-history"},
		},
	}
	id, ok := r.Resolve(in, "")
	if !ok || id != "t-history" {
		t.Errorf("Resolve = (%q, %v), want the first tagged history record", id, ok)
	}
}

func TestTagResolveKeywordGroup(t *testing.T) {
	r := NewTagResolver(nil, CreationSimilarity)
	in := Input{
		Receipt:  entity.ParsedReceipt{Merchant: "美团"},
		Text:     "外卖订单 -25.50",
		Snapshot: testSnapshot(),
	}
	id, ok := r.Resolve(in, "")
	if !ok || id != "t-takeout" {
		t.Errorf("Resolve = (%q, %v), want the takeout tag", id, ok)
	}
}

func TestTagResolveCategoryNameContainment(t *testing.T) {
	r := NewTagResolver(nil, CreationSimilarity)
	in := Input{
		Receipt:  entity.ParsedReceipt{},
		Text:     "月卡扣费",
		Snapshot: testSnapshot(),
	}
	id, ok := r.Resolve(in, "通勤费用")
	if !ok || id != "t-commute" {
		t.Errorf("Resolve = (%q, %v), want the commute tag by name containment", id, ok)
	}
}

func TestTagResolveNothing(t *testing.T) {
	r := NewTagResolver(nil, CreationSimilarity)
	in := Input{
		Receipt:  entity.ParsedReceipt{Merchant: "无名小店"},
		Text:     "付款",
		Snapshot: testSnapshot(),
	}
	if id, ok := r.Resolve(in, ""); ok {
		t.Errorf("Resolve = (%q, %v), want no tag", id, ok)
	}
}
