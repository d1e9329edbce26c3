package i18n

import (
	"reflect"
	"sync"
)

// Language type
type Language string

const (
	LangEN Language = "en"
	LangPT Language = "pt"
)

// Messages holds all translatable strings
type Messages struct {
	// System
	Starting           string
	ConfigLoaded       string
	ServerListening    string
	ShuttingDown       string
	ConfigLoadFailed   string
	DBInitFailed       string
	DBMigrationsFailed string
	APIServerError     string
	RulesFileLoaded    string
	RulesFileFailed    string
	CalendarEnabled    string
	CalendarDisabled   string
	MetricsInit        string

	// Analysis
	AnalysisStarted      string
	AnalysisCompleted    string
	AnalysisFailed       string
	ReportParseFailed    string
	AuditWriteFailed     string
	CalendarLookupFailed string
	NewsCheckSkipped     string

	// Violations
	ViolationMinDaysTitle     string
	ViolationMinDaysDesc      string
	ViolationWinDaysTitle     string
	ViolationWinDaysDesc      string
	ViolationConsistencyTitle string
	ViolationConsistencyDesc  string
	ViolationAveragingTitle   string
	ViolationAveragingDesc    string
	ViolationOvernightTitle   string
	ViolationOvernightDesc    string
	ViolationNewsTitle        string
	ViolationNewsDesc         string

	// Recommendations
	RecommendMinDays     string
	RecommendWinDays     string
	RecommendConsistency string
	RecommendAveraging   string
	RecommendOvernight   string
	RecommendNews        string
	RecommendCompliant   string

	// Next steps
	NextApprovedWithdraw   string
	NextApprovedProceed    string
	NextApprovedDiscipline string
	NextRejectedBlocked    string
	NextRejectedReview     string
	NextRejectedAdjust     string
	NextFixCritical        string

	// Rule descriptions (rules endpoint)
	RuleDescMinDays       string
	RuleDescWinDays       string
	RuleDescWinDayProfit  string
	RuleDescConsistency   string
	RuleDescMaxAveraging  string
	RuleDescNewsTrading   string
	RuleDescOvernight     string
}

var (
	currentLang Language = LangEN
	mu          sync.RWMutex
	messages    *Messages
)

// English messages
var messagesEN = Messages{
	// System
	Starting:           "Starting withdrawal analyzer...",
	ConfigLoaded:       "Config loaded (Port: %s)",
	ServerListening:    "Server listening on :%s",
	ShuttingDown:       "Shutting down gracefully...",
	ConfigLoadFailed:   "Failed to load config: %v",
	DBInitFailed:       "Failed to init database: %v",
	DBMigrationsFailed: "Failed to apply migrations: %v",
	APIServerError:     "API server error: %v",
	RulesFileLoaded:    "Rule profiles loaded from %s",
	RulesFileFailed:    "Failed to load rule profiles from %s: %v",
	CalendarEnabled:    "Economic calendar lookup enabled",
	CalendarDisabled:   "FINNHUB_API_KEY not set, news verification disabled",
	MetricsInit:        "System metrics initialized",

	// Analysis
	AnalysisStarted:      "Analysis started (account: %s, trades: %d, news check: %t)",
	AnalysisCompleted:    "Analysis completed (approved: %t, violations: %d, critical: %d)",
	AnalysisFailed:       "Analysis failed: %v",
	ReportParseFailed:    "Failed to parse trade report: %v",
	AuditWriteFailed:     "Failed to record analysis run: %v",
	CalendarLookupFailed: "Economic calendar lookup failed, skipping news check: %v",
	NewsCheckSkipped:     "News verification requested but no calendar source configured",

	// Violations
	ViolationMinDaysTitle:     "Insufficient Trading Days",
	ViolationMinDaysDesc:      "Traded on %d days, minimum required: %d",
	ViolationWinDaysTitle:     "Insufficient Winning Days",
	ViolationWinDaysDesc:      "Had %d winning days, minimum required: %d",
	ViolationConsistencyTitle: "Consistency Rule Violation",
	ViolationConsistencyDesc:  "Largest daily profit represents %.1f%% of total profit, maximum allowed: %.1f%%",
	ViolationAveragingTitle:   "Possible Averaging Rule Violation",
	ViolationAveragingDesc:    "Trade using averaging closed at a loss: %.2f",
	ViolationOvernightTitle:   "Overnight Trading Detected",
	ViolationOvernightDesc:    "Position held overnight: %s opened on %s and closed on %s",
	ViolationNewsTitle:        "Position Held During News Event",
	ViolationNewsDesc:         "Trade overlaps a high-impact event: %s",

	// Recommendations
	RecommendMinDays:     "Increase the number of trading days to meet the required minimum",
	RecommendWinDays:     "Focus on strategies that produce more consistent winning days",
	RecommendConsistency: "Spread profits more evenly across days to satisfy the consistency rule",
	RecommendAveraging:   "Avoid averaging into losing positions",
	RecommendOvernight:   "Close all positions before the end of the trading day",
	RecommendNews:        "Avoid holding positions during high-impact news events",
	RecommendCompliant:   "Congratulations! Your trading complies with the withdrawal rules",

	// Next steps
	NextApprovedWithdraw:   "Your withdrawal is approved under the analyzed rules",
	NextApprovedProceed:    "Proceed with the withdrawal request through the trader dashboard",
	NextApprovedDiscipline: "Keep up the trading discipline for future withdrawals",
	NextRejectedBlocked:    "Your withdrawal is NOT approved due to the violations found",
	NextRejectedReview:     "Review the critical violations listed above",
	NextRejectedAdjust:     "Adjust your trading to meet the requirements",
	NextFixCritical:        "Fix the %d critical violations before requesting a withdrawal",

	// Rule descriptions
	RuleDescMinDays:      "Minimum days traded before a withdrawal can be requested",
	RuleDescWinDays:      "Minimum number of winning days required",
	RuleDescWinDayProfit: "Minimum daily profit in USD to count as a winning day",
	RuleDescConsistency:  "Maximum percentage a single day may represent of total profit",
	RuleDescMaxAveraging: "Maximum averaging additions allowed per trade",
	RuleDescNewsTrading:  "Whether holding positions during high-impact news is allowed",
	RuleDescOvernight:    "Whether overnight positions are allowed",
}

// Portuguese messages
var messagesPT = Messages{
	// System
	Starting:           "Iniciando analisador de saques...",
	ConfigLoaded:       "Configuração carregada (Porta: %s)",
	ServerListening:    "Servidor escutando em :%s",
	ShuttingDown:       "Encerrando graciosamente...",
	ConfigLoadFailed:   "Falha ao carregar configuração: %v",
	DBInitFailed:       "Falha ao iniciar banco de dados: %v",
	DBMigrationsFailed: "Falha ao aplicar migrações: %v",
	APIServerError:     "Erro no servidor API: %v",
	RulesFileLoaded:    "Perfis de regras carregados de %s",
	RulesFileFailed:    "Falha ao carregar perfis de regras de %s: %v",
	CalendarEnabled:    "Consulta ao calendário econômico habilitada",
	CalendarDisabled:   "FINNHUB_API_KEY não configurada, verificação de notícias desabilitada",
	MetricsInit:        "Métricas do sistema inicializadas",

	// Analysis
	AnalysisStarted:      "Análise iniciada (conta: %s, operações: %d, notícias: %t)",
	AnalysisCompleted:    "Análise concluída (aprovado: %t, violações: %d, críticas: %d)",
	AnalysisFailed:       "Falha na análise: %v",
	ReportParseFailed:    "Falha ao processar relatório de operações: %v",
	AuditWriteFailed:     "Falha ao registrar análise: %v",
	CalendarLookupFailed: "Falha na consulta ao calendário econômico, pulando verificação de notícias: %v",
	NewsCheckSkipped:     "Verificação de notícias solicitada, mas nenhuma fonte de calendário configurada",

	// Violations
	ViolationMinDaysTitle:     "Dias Operados Insuficientes",
	ViolationMinDaysDesc:      "Operou %d dias, mínimo exigido: %d",
	ViolationWinDaysTitle:     "Dias Vencedores Insuficientes",
	ViolationWinDaysDesc:      "Teve %d dias vencedores, mínimo exigido: %d",
	ViolationConsistencyTitle: "Violação da Regra de Consistência",
	ViolationConsistencyDesc:  "Maior lucro diário representa %.1f%% do lucro total, máximo permitido: %.1f%%",
	ViolationAveragingTitle:   "Possível Violação da Regra de Médio",
	ViolationAveragingDesc:    "Operação com estratégia de médio resultou em prejuízo: %.2f",
	ViolationOvernightTitle:   "Trading Overnight Detectado",
	ViolationOvernightDesc:    "Operação mantida overnight: %s aberta em %s e fechada em %s",
	ViolationNewsTitle:        "Posicionamento Durante Notícias",
	ViolationNewsDesc:         "Operação coincide com evento de alto impacto: %s",

	// Recommendations
	RecommendMinDays:     "Aumente o número de dias operados para atender ao mínimo exigido",
	RecommendWinDays:     "Foque em estratégias que gerem mais dias vencedores consistentes",
	RecommendConsistency: "Distribua melhor os lucros ao longo dos dias para atender a regra de consistência",
	RecommendAveraging:   "Evite aumentar posições perdedoras com estratégia de médio",
	RecommendOvernight:   "Feche todas as posições antes do final do dia de trading",
	RecommendNews:        "Evite manter posições abertas durante eventos noticiosos de alto impacto",
	RecommendCompliant:   "Parabéns! Suas operações estão em conformidade com as regras de saque",

	// Next steps
	NextApprovedWithdraw:   "Seu saque está aprovado conforme as regras analisadas",
	NextApprovedProceed:    "Proceda com a solicitação de saque através do painel do trader",
	NextApprovedDiscipline: "Continue mantendo a disciplina operacional para futuros saques",
	NextRejectedBlocked:    "Seu saque NÃO está aprovado devido às violações encontradas",
	NextRejectedReview:     "Revise as violações críticas listadas acima",
	NextRejectedAdjust:     "Ajuste sua estratégia para atender aos requisitos",
	NextFixCritical:        "Corrija as %d violações críticas antes de solicitar o saque",

	// Rule descriptions
	RuleDescMinDays:      "Mínimo de dias que deve operar para solicitar saque",
	RuleDescWinDays:      "Mínimo de dias vencedores necessários",
	RuleDescWinDayProfit: "Lucro mínimo em USD para considerar dia vencedor",
	RuleDescConsistency:  "Máximo % que um dia pode representar do lucro total",
	RuleDescMaxAveraging: "Máximo de médios permitidos por operação",
	RuleDescNewsTrading:  "Se é permitido estar posicionado durante notícias",
	RuleDescOvernight:    "Se é permitido trading overnight",
}

func init() {
	messages = &messagesEN
}

// SetLanguage sets the current language
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()

	currentLang = lang
	switch lang {
	case LangPT:
		messages = &messagesPT
	default:
		messages = &messagesEN
	}
}

// GetLanguage returns the current language
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return currentLang
}

// M returns the current messages
func M() *Messages {
	mu.RLock()
	defer mu.RUnlock()
	return messages
}

// Get returns specific message by key dynamically using reflection
func Get(key string) string {
	msg := M()
	v := reflect.ValueOf(msg).Elem()
	f := v.FieldByName(key)
	if f.IsValid() && f.Kind() == reflect.String {
		return f.String()
	}
	return key
}
