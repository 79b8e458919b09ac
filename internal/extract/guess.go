package extract

import "strings"

// categoryHints maps keyword cues to a free-text category guess. Ordered:
// earlier rows are more specific. Extend by adding rows, not branches.
var categoryHints = []struct {
	Guess    string
	Keywords []string
}{
	{"咖啡", []string{"咖啡", "coffee", "latte", "espresso"}},
	{"奶茶", []string{"奶茶", "茶饮", "milk tea"}},
	{"餐饮", []string{"餐", "饭", "食", "烤", "火锅", "面馆", "外卖", "restaurant", "dining"}},
	{"交通", []string{"打车", "出行", "出租车", "地铁", "公交", "高铁", "火车票", "taxi", "metro"}},
	{"加油", []string{"加油", "石油", "石化", "fuel", "petrol"}},
	{"超市", []string{"超市", "便利店", "生鲜", "supermarket", "mart"}},
	{"购物", []string{"商城", "旗舰店", "百货", "专卖店", "store", "mall"}},
	{"娱乐", []string{"电影", "影城", "游戏", "ktv", "cinema"}},
	{"医疗", []string{"药房", "药店", "医院", "诊所", "pharmacy", "clinic"}},
	{"话费", []string{"话费", "充值", "流量", "联通", "移动", "电信"}},
}

// CategoryGuess derives a free-text category hint from the merchant and item
// first, then the whole text. Absence is returned as the empty string.
func CategoryGuess(merchant, item, text string) string {
	for _, scope := range []string{merchant + " " + item, text} {
		lower := strings.ToLower(scope)
		for _, h := range categoryHints {
			for _, kw := range h.Keywords {
				if strings.Contains(lower, kw) {
					return h.Guess
				}
			}
		}
	}
	return ""
}
