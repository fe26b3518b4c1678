package llm

import "fmt"

// BuildOpenStatusPrompt asks the model whether a shop is open at the target
// date/time, answering TRUE (open) or FALSE (closed) and nothing else.
func BuildOpenStatusPrompt(shopName, openText, closeText, target string) string {
	return fmt.Sprintf(`店舗情報に基づき、指定日時が「営業中」か「休み」か判定してください。
店舗: %s
営業時間: %s
定休日: %s
希望日時: %s
回答は 'TRUE' (営業中) または 'FALSE' (休み) の文字列のみ。`,
		shopName, openText, closeText, target)
}
