package resolve

import (
	"log/slog"
	"strings"

	"github.com/hanwen-zhu/billsnap/constants"
)

// platformTagNames are the tag-name spellings each platform may appear as.
var platformTagNames = map[constants.Platform][]string{
	constants.PlatformWeChat: {"微信", "微信支付", "wechat"},
	constants.PlatformAlipay: {"支付宝", "alipay"},
}

// tagKeywordGroups is the fixed keyword-group-to-tag-name matching table.
var tagKeywordGroups = []struct {
	Keywords []string
	TagNames []string
}{
	{[]string{"外卖", "美团", "饿了么"}, []string{"外卖"}},
	{[]string{"打车", "滴滴", "出租"}, []string{"出行", "打车"}},
	{[]string{"地铁", "公交"}, []string{"通勤", "交通"}},
	{[]string{"加油", "石化", "石油"}, []string{"加油", "汽车"}},
	{[]string{"超市", "便利店"}, []string{"日常", "超市"}},
	{[]string{"咖啡", "奶茶"}, []string{"饮品", "咖啡"}},
}

// TagResolver picks a tag for a parse. Threshold is the merchant-similarity
// cutoff for history matching.
type TagResolver struct {
	logger    *slog.Logger
	threshold float64
}

func NewTagResolver(logger *slog.Logger, threshold float64) *TagResolver {
	if logger == nil {
		logger = slog.Default()
	}
	if threshold <= 0 {
		threshold = CreationSimilarity
	}
	return &TagResolver{logger: logger, threshold: threshold}
}

// Resolve returns the chosen tag id. categoryName is the name of the
// already-resolved category, or empty. ok is false when nothing matched;
// callers must leave the record untagged rather than guess.
func (r *TagResolver) Resolve(in Input, categoryName string) (string, bool) {
	// 1. Platform name, exact or alias.
	if names, ok := platformTagNames[in.Receipt.Platform]; ok {
		for _, t := range in.Snapshot.Tags {
			tn := strings.ToLower(t.Name)
			for _, n := range names {
				if tn == n || strings.EqualFold(t.Name, n) {
					return t.ID, true
				}
			}
		}
	}

	// 2. First history record for a similar merchant that carries a tag.
	if in.Receipt.Merchant != "" {
		for _, h := range in.History {
			if h.TagID == "" {
				continue
			}
			if Matches(in.Receipt.Merchant, h.Merchant, r.threshold) {
				r.logger.Debug("resolve.tag.history_hit",
					"merchant", in.Receipt.Merchant, "tag_id", h.TagID)
				return h.TagID, true
			}
		}
	}

	// 3. Keyword-group table.
	context := strings.ToLower(in.Receipt.Merchant + " " + in.Receipt.Item + " " + in.Text)
	for _, g := range tagKeywordGroups {
		if !containsAny(context, g.Keywords) {
			continue
		}
		for _, t := range in.Snapshot.Tags {
			if containsAny(strings.ToLower(t.Name), g.TagNames) {
				return t.ID, true
			}
		}
	}

	// 4. Resolved category name against tag names by containment.
	if categoryName != "" {
		cn := strings.ToLower(categoryName)
		for _, t := range in.Snapshot.Tags {
			tn := strings.ToLower(t.Name)
			if tn == "" {
				continue
			}
			if strings.Contains(cn, tn) || strings.Contains(tn, cn) {
				return t.ID, true
			}
		}
	}
	return "", false
}
