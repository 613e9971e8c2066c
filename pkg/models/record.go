package models

import "time"

// DelinquencyRecord is one row of the consolidated delinquency fact table
// (table_agg_inad_consolidado). Rows are loaded from an external table and
// never mutated by this system.
type DelinquencyRecord struct {
	ReferenceDate  time.Time `json:"data_base"`
	State          string    `json:"uf"`
	ClientType     string    `json:"cliente"`
	Occupation     string    `json:"ocupacao"`
	IndustrySector string    `json:"cnae_secao"`
	SizeTier       string    `json:"porte"`
	Modality       string    `json:"modalidade"`

	SumDueWithin90Days   float64 `json:"soma_a_vencer_ate_90_dias"`
	SumOperationCount    float64 `json:"soma_numero_de_operacoes"`
	SumActivePortfolio   float64 `json:"soma_carteira_ativa"`
	SumDelinquentBalance float64 `json:"soma_carteira_inadimplida_arrastada"`
	SumProblematicAssets float64 `json:"soma_ativo_problematico"`

	MeanDueWithin90Days   float64 `json:"media_a_vencer_ate_90_dias"`
	MeanOperationCount    float64 `json:"media_numero_de_operacoes"`
	MeanActivePortfolio   float64 `json:"media_carteira_ativa"`
	MeanDelinquentBalance float64 `json:"media_carteira_inadimplida_arrastada"`
	MeanProblematicAssets float64 `json:"media_ativo_problematico"`

	MinDueWithin90Days   float64 `json:"min_a_vencer_ate_90_dias"`
	MinOperationCount    float64 `json:"min_numero_de_operacoes"`
	MinActivePortfolio   float64 `json:"min_carteira_ativa"`
	MinDelinquentBalance float64 `json:"min_carteira_inadimplida_arrastada"`
	MinProblematicAssets float64 `json:"min_ativo_problematico"`

	MaxDueWithin90Days   float64 `json:"max_a_vencer_ate_90_dias"`
	MaxOperationCount    float64 `json:"max_numero_de_operacoes"`
	MaxActivePortfolio   float64 `json:"max_carteira_ativa"`
	MaxDelinquentBalance float64 `json:"max_carteira_inadimplida_arrastada"`
	MaxProblematicAssets float64 `json:"max_ativo_problematico"`
}

// RowKindForecast tags projection rows that are model forecasts rather than
// observed history. Matching is case-insensitive.
const RowKindForecast = "PREVISAO"

// ProjectionRecord is one row of the delinquency projection table
// (projecao_consolidado). The RowKind tag distinguishes observed rows from
// forecast rows sharing the same table shape.
type ProjectionRecord struct {
	Period     string `json:"ano_mes"`
	SizeTier   string `json:"porte"`
	State      string `json:"uf"`
	ClientType string `json:"cliente"`
	Modality   string `json:"modalidade"`
	RowKind    string `json:"tipo"`

	SumProblematicAssets float64 `json:"soma_ativo_problematico"`
	SumDelinquentBalance float64 `json:"soma_carteira_inadimplida_arrastada"`
}
