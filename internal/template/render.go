// Package template provides instruction prompt rendering.
//
// 지원하는 변수 형식:
//
//	{{incident.description}}
package template

import (
	"strings"
)

// DefaultInstruction - 신고 분류에 사용하는 고정 지시문
const DefaultInstruction = "Słuzby miejskie odpowiadaja za sprzatanie drog, naprawe ogrzewania, dziury w drodze, " +
	"zepsuta komunikacje miejska, naprawiaja siec energetyczna. Sluzby ratunkowe odpowiadaja " +
	"tylko w sytuacji powaznego zagrozenia zycia. Odpowiedz jedną z dwóch opcji: SŁUŻBY RATUNKOWE " +
	"lub SŁUŻBY MIEJSKIE. Przeanalizuj zgloszenie: {{incident.description}}"

// IncidentData - 템플릿 렌더링에 사용할 신고 데이터
type IncidentData struct {
	Description string
}

// RenderPrompt - 템플릿의 변수를 실제 값으로 치환
//
// nil로 전달된 경우 변수는 빈 문자열로 치환됩니다.
func RenderPrompt(tpl string, incident *IncidentData) string {
	description := ""
	if incident != nil {
		description = incident.Description
	}
	return strings.NewReplacer("{{incident.description}}", description).Replace(tpl)
}
