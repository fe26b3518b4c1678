package models

// BudgetOption is one price tier the directory can filter on.
type BudgetOption struct {
	Label string `json:"label"`
	Code  string `json:"code"`
}

// Budgets lists the selectable tiers in display order.
var Budgets = []BudgetOption{
	{Label: "〜2000円", Code: "B001"},
	{Label: "2001〜3000円", Code: "B002"},
	{Label: "3001〜4000円", Code: "B003"},
	{Label: "4001〜5000円", Code: "B008"},
	{Label: "5001〜7000円", Code: "B004"},
	{Label: "7001〜10000円", Code: "B005"},
	{Label: "10001円〜", Code: "B006"},
}

// GenreAny is the "no preference" genre; it never reaches the keyword.
const GenreAny = "指定なし"

var Genres = []string{
	GenreAny, "居酒屋", "焼肉", "焼き鳥", "イタリアン", "フレンチ", "寿司",
	"和食", "中華", "ラーメン", "カフェ", "韓国料理",
}

var Prefectures = []string{
	"北海道", "青森県", "岩手県", "宮城県", "秋田県", "山形県", "福島県",
	"茨城県", "栃木県", "群馬県", "埼玉県", "千葉県", "東京都", "神奈川県",
	"新潟県", "富山県", "石川県", "福井県", "山梨県", "長野県", "岐阜県",
	"静岡県", "愛知県", "三重県", "滋賀県", "京都府", "大阪府", "兵庫県",
	"奈良県", "和歌山県", "鳥取県", "島根県", "岡山県", "広島県", "山口県",
	"徳島県", "香川県", "愛媛県", "高知県", "福岡県", "佐賀県", "長崎県",
	"熊本県", "大分県", "宮崎県", "鹿児島県", "沖縄県",
}

// BudgetCodeForLabel resolves a display label to its directory code.
func BudgetCodeForLabel(label string) (string, bool) {
	for _, b := range Budgets {
		if b.Label == label {
			return b.Code, true
		}
	}
	return "", false
}

// IsBudgetCode reports whether code is one the directory accepts.
func IsBudgetCode(code string) bool {
	for _, b := range Budgets {
		if b.Code == code {
			return true
		}
	}
	return false
}
