package resolve

import (
	"log/slog"
	"strings"

	"github.com/hanwen-zhu/billsnap/constants"
	"github.com/hanwen-zhu/billsnap/internal/alias"
	"github.com/hanwen-zhu/billsnap/internal/entity"
)

// Similarity thresholds per call site.
const (
	CreationSimilarity = 0.70
	UploadSimilarity   = 0.72
)

// acceptScore is the minimum leaf score worth assigning without asking the
// user.
const acceptScore = 18

// Scoring weights.
const (
	scoreGuessMatch   = 20
	scoreHintForward  = 8
	scoreHintReverse  = 4
	scoreHistoryExact = 24
	scoreBrandBonus   = 10
)

// hintGroups tie category-name keywords to the context tokens that suggest
// them. Declarative: add vendors/domains by adding rows.
var hintGroups = []struct {
	NameKeys []string
	Tokens   []string
}{
	{[]string{"餐饮", "美食", "dining", "food"}, []string{"餐", "饭", "食", "外卖", "烤", "火锅", "面"}},
	{[]string{"咖啡", "饮品"}, []string{"咖啡", "奶茶", "茶饮"}},
	{[]string{"交通", "出行", "transport"}, []string{"打车", "地铁", "公交", "出租", "加油", "高铁"}},
	{[]string{"购物", "shopping"}, []string{"商城", "旗舰店", "百货", "淘宝", "京东"}},
	{[]string{"超市", "日用", "grocery"}, []string{"超市", "便利", "生鲜"}},
	{[]string{"娱乐"}, []string{"电影", "游戏", "ktv"}},
	{[]string{"医疗", "健康"}, []string{"药", "医院", "诊所"}},
	{[]string{"通讯", "话费"}, []string{"话费", "充值", "流量"}},
}

// brandDomainNames maps a brand's spending domain to the category-name
// keywords it should boost.
var brandDomainNames = map[alias.Domain][]string{
	alias.DomainDining:    {"餐饮", "美食", "dining"},
	alias.DomainCoffee:    {"餐饮", "咖啡", "饮品"},
	alias.DomainTransport: {"交通", "出行"},
	alias.DomainShopping:  {"购物"},
	alias.DomainGrocery:   {"超市", "日用", "购物"},
	alias.DomainEnergy:    {"交通", "加油", "汽车"},
}

// Input bundles everything category resolution reads. History must be
// ordered most-recent-first; it is never mutated.
type Input struct {
	Receipt  entity.ParsedReceipt
	Text     string // normalized source text
	Snapshot entity.Snapshot
	History  []entity.HistoryRecord
}

// CategoryResolver picks a leaf category for a parse. Threshold is the
// merchant-similarity cutoff for history matching.
type CategoryResolver struct {
	logger    *slog.Logger
	threshold float64
}

func NewCategoryResolver(logger *slog.Logger, threshold float64) *CategoryResolver {
	if logger == nil {
		logger = slog.Default()
	}
	if threshold <= 0 {
		threshold = CreationSimilarity
	}
	return &CategoryResolver{logger: logger, threshold: threshold}
}

// Resolve returns the chosen leaf category id and the inferred direction.
// ok is false when no candidate clears the acceptance threshold; callers
// must treat that as "unresolved, ask the user".
func (r *CategoryResolver) Resolve(in Input) (string, constants.Direction, bool) {
	dir := InferDirection(in.Receipt, in.Text)

	preferred := preferredLeaves(in.Snapshot, dir)
	if len(preferred) == 0 {
		return "", dir, false
	}
	preferredSet := make(map[string]bool, len(preferred))
	for _, c := range preferred {
		preferredSet[c.ID] = true
	}

	// A confident prior label for the same merchant short-circuits scoring.
	if in.Receipt.Merchant != "" {
		for _, h := range in.History {
			if !preferredSet[h.CategoryID] {
				continue
			}
			if Matches(in.Receipt.Merchant, h.Merchant, r.threshold) {
				r.logger.Debug("resolve.category.history_hit",
					"merchant", in.Receipt.Merchant, "category_id", h.CategoryID)
				return h.CategoryID, dir, true
			}
		}
	}

	context := strings.ToLower(in.Receipt.Merchant + " " + in.Receipt.Item + " " + in.Text)
	bestID := ""
	bestScore := 0
	for _, leaf := range preferred {
		s := r.scoreLeaf(leaf, in, context)
		if s > bestScore {
			bestScore = s
			bestID = leaf.ID
		}
	}
	if bestID != "" && bestScore >= acceptScore {
		r.logger.Debug("resolve.category.scored",
			"category_id", bestID, "score", bestScore)
		return bestID, dir, true
	}

	// Last resort: a known brand's domain alone.
	if id, ok := brandOnlyCategory(in.Receipt.Merchant, context, preferred); ok {
		return id, dir, true
	}
	return "", dir, false
}

func (r *CategoryResolver) scoreLeaf(leaf entity.Category, in Input, context string) int {
	score := 0
	name := strings.ToLower(leaf.Name)
	guess := strings.ToLower(in.Receipt.CategoryGuess)

	if guess != "" && (strings.Contains(name, guess) || strings.Contains(guess, name)) {
		score += scoreGuessMatch
	}

	for _, g := range hintGroups {
		if !containsAny(name, g.NameKeys) {
			continue
		}
		if containsAny(context, g.Tokens) {
			score += scoreHintForward
		}
		if strings.Contains(context, name) {
			score += scoreHintReverse
		}
		break
	}

	// History votes: prior labels of this leaf for similar merchants.
	if in.Receipt.Merchant != "" {
		key := MerchantKey(in.Receipt.Merchant)
		for _, h := range in.History {
			if h.CategoryID != leaf.ID {
				continue
			}
			hk := MerchantKey(h.Merchant)
			if hk == "" || key == "" {
				continue
			}
			if key == hk || strings.Contains(key, hk) || strings.Contains(hk, key) {
				score += scoreHistoryExact
			} else {
				score += int(Similarity(in.Receipt.Merchant, h.Merchant) * 20)
			}
		}
	}

	if domain, ok := brandDomain(in.Receipt.Merchant, context); ok {
		if containsAny(name, brandDomainNames[domain]) {
			score += scoreBrandBonus
		}
	}
	return score
}

func brandOnlyCategory(merchant, context string, preferred []entity.Category) (string, bool) {
	domain, ok := brandDomain(merchant, context)
	if !ok {
		return "", false
	}
	for _, leaf := range preferred {
		if containsAny(strings.ToLower(leaf.Name), brandDomainNames[domain]) {
			return leaf.ID, true
		}
	}
	return "", false
}

func brandDomain(merchant, context string) (alias.Domain, bool) {
	if d, ok := alias.DomainOf(merchant); ok {
		return d, true
	}
	return alias.DomainOf(context)
}

// preferredLeaves restricts candidates to leaves of the inferred direction,
// falling back to all leaves when none match.
func preferredLeaves(snap entity.Snapshot, dir constants.Direction) []entity.Category {
	leaves := snap.LeafCategories()
	matching := make([]entity.Category, 0, len(leaves))
	for _, c := range leaves {
		if c.Direction == dir {
			matching = append(matching, c)
		}
	}
	if len(matching) > 0 {
		return matching
	}
	return leaves
}
