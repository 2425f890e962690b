package fbdomain

// DailySpendRevenue é a contribuição de uma conta do Facebook Ads para o
// agregado de um dia
type DailySpendRevenue struct {
	Spend   float64 `json:"spend"`
	Revenue float64 `json:"revenue"`
}

// InsightAction é uma ação de conversão reportada pela Graph API. Valores
// numéricos chegam como string.
type InsightAction struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// InsightRow é uma linha de insights diários de uma conta de anúncios
type InsightRow struct {
	Spend   string          `json:"spend"`
	Actions []InsightAction `json:"actions"`
}

// InsightsResponse é o envelope de resposta do endpoint de insights
type InsightsResponse struct {
	Data []InsightRow `json:"data"`
}

// ConversionActionTypes são os tipos de ação somados como receita.
// Corresponde às conversões de compra atribuídas fora da plataforma.
var ConversionActionTypes = map[string]struct{}{
	"offsite_conversion":          {},
	"offsite_conversion.purchase": {},
}
