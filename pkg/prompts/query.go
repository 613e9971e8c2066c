package prompts

import (
	"fmt"
	"strings"
	"time"

	"github.com/credana/delinq-engine/pkg/models"
)

// factColumns describes the consolidated fact table, dimension columns first.
const factColumns = `- data_base (data de referência dos dados)
- uf (unidade federativa, siglas dos estados brasileiros)
- cliente (tipo de cliente: PF ou PJ)
- ocupacao (ocupações para PF)
- cnae_secao (setores de atuação para PJ)
- porte (porte do cliente: Pequeno, Médio, Grande)
- modalidade (modalidade da operação de crédito)

As colunas a seguir representam agregados estatísticos:
- soma_a_vencer_ate_90_dias
- soma_numero_de_operacoes
- soma_carteira_ativa
- soma_carteira_inadimplida_arrastada
- soma_ativo_problematico
- media_a_vencer_ate_90_dias
- media_numero_de_operacoes
- media_carteira_ativa
- media_carteira_inadimplida_arrastada
- media_ativo_problematico
- min_a_vencer_ate_90_dias
- min_numero_de_operacoes
- min_carteira_ativa
- min_carteira_inadimplida_arrastada
- min_ativo_problematico
- max_a_vencer_ate_90_dias
- max_numero_de_operacoes
- max_carteira_ativa
- max_carteira_inadimplida_arrastada
- max_ativo_problematico`

// projectionColumns describes the projection table.
const projectionColumns = `- ano_mes (ano e mês da projeção)
- porte (porte do cliente: Pequeno, Médio, Grande)
- uf (unidade federativa, siglas dos estados brasileiros)
- cliente (tipo de cliente: PF ou PJ)
- modalidade (modalidade da operação de crédito)
- tipo (tipo de cliente: PF ou PJ)
- soma_ativo_problematico (soma dos ativos problemáticos)
- soma_carteira_inadimplida_arrastada (soma da carteira inadimplida arrastada)`

// regionMapping tells the model how to translate Brazilian regions into UF
// filters, since the tables only carry the UF column.
const regionMapping = `Quando a pergunta mencionar regiões do Brasil, traduza para as UFs correspondentes:
- Norte: AC, AP, AM, PA, RO, RR, TO
- Nordeste: AL, BA, CE, MA, PB, PE, PI, RN, SE
- Centro-Oeste: DF, GO, MT, MS
- Sudeste: ES, MG, RJ, SP
- Sul: PR, RS, SC`

// percentageInstruction covers rate questions ("taxa de inadimplência").
const percentageInstruction = `Quando a pergunta pedir taxa ou percentual de inadimplência, calcule a razão entre os agregados, por exemplo:
SUM(soma_carteira_inadimplida_arrastada) / NULLIF(SUM(soma_carteira_ativa), 0) * 100`

// BuildFactQueryPrompt creates the SQL-generation system prompt for
// questions over the consolidated fact table. The classified intent selects
// which SQL idiom the model is told to use.
func BuildFactQueryPrompt(tableName string, intent models.Intent) string {
	var prompt strings.Builder

	prompt.WriteString("Você é um especialista em SQL que transforma perguntas sobre inadimplência em consultas SQL precisas.\n\n")
	prompt.WriteString(fmt.Sprintf("A tabela principal se chama '%s' e contém as seguintes colunas:\n", tableName))
	prompt.WriteString(factColumns)
	prompt.WriteString("\n\n")
	prompt.WriteString(fmt.Sprintf("A intenção do usuário foi classificada como: %s\n\n", intent))
	prompt.WriteString("Com base nesta intenção e na pergunta abaixo, gere uma consulta SQL que retorne os dados necessários.\n")
	prompt.WriteString("Para consultas de RANKING, use ORDER BY e LIMIT.\n")
	prompt.WriteString("Para consultas de COMPARAÇÃO, use GROUP BY para os itens comparados.\n")
	prompt.WriteString("Para consultas ESPECÍFICAS, use filtros WHERE adequados.\n")
	prompt.WriteString("Para consultas de TENDÊNCIA, utilize agrupamento por data_base.\n\n")
	prompt.WriteString(regionMapping)
	prompt.WriteString("\n\n")
	prompt.WriteString(percentageInstruction)
	prompt.WriteString("\n\n")
	prompt.WriteString("IMPORTANTE: Retorne APENAS o código SQL, sem explicações ou comentários.")

	return prompt.String()
}

// BuildProjectionQueryPrompt creates the SQL-generation system prompt for
// PROJEÇÃO questions over the projection table. The reference date anchors
// relative windows like "os próximos 90 dias".
func BuildProjectionQueryPrompt(tableName string, now time.Time) string {
	var prompt strings.Builder

	prompt.WriteString("Você é um especialista em SQL que transforma perguntas sobre inadimplência em consultas SQL precisas.\n\n")
	prompt.WriteString(fmt.Sprintf("A tabela principal se chama '%s' e contém as seguintes colunas:\n", tableName))
	prompt.WriteString(projectionColumns)
	prompt.WriteString("\n\n")
	prompt.WriteString(fmt.Sprintf("A data de referência de hoje é %s.\n", now.Format("2006-01")))
	prompt.WriteString("Com base na pergunta abaixo, gere uma consulta SQL que retorne os dados necessários.\n")
	prompt.WriteString("Para consultas de PROJEÇÃO, utilize filtros por ano_mes, uf, porte, cliente, modalidade ou tipo, e agregue os valores conforme necessário.\n")
	prompt.WriteString("Quando a pergunta mencionar um horizonte relativo (por exemplo, os próximos 90 dias ou os próximos 5 anos), filtre ano_mes a partir da data de referência.\n\n")
	prompt.WriteString(regionMapping)
	prompt.WriteString("\n\n")
	prompt.WriteString("IMPORTANTE: Retorne APENAS o código SQL, sem explicações ou comentários.")

	return prompt.String()
}

// BuildQueryPrompt selects the template for the classified intent.
func BuildQueryPrompt(factTable, projectionTable string, intent models.Intent, now time.Time) string {
	if intent == models.IntentProjection {
		return BuildProjectionQueryPrompt(projectionTable, now)
	}
	return BuildFactQueryPrompt(factTable, intent)
}
