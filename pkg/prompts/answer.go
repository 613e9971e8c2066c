package prompts

import (
	"fmt"
	"strings"

	"github.com/credana/delinq-engine/pkg/models"
)

// BuildAnswerPrompt creates the answer-composition system prompt. It merges
// the session's cached insight report with the dynamic query results; the
// dynamic results take priority because they were generated for this
// specific question.
func BuildAnswerPrompt(intent models.Intent, insights, dynamicResults string) string {
	var prompt strings.Builder

	prompt.WriteString("Você é um especialista em análise de inadimplência no Brasil.\n\n")
	prompt.WriteString(fmt.Sprintf("A pergunta do usuário foi classificada como: %s\n\n", intent))
	prompt.WriteString("Responda à pergunta usando estas duas fontes de informação:\n\n")
	prompt.WriteString("1. INSIGHTS PRÉ-CALCULADOS:\n")
	prompt.WriteString(insights)
	prompt.WriteString("\n\n2. RESULTADOS DINÂMICOS DA CONSULTA:\n")
	prompt.WriteString(dynamicResults)
	prompt.WriteString("\n\n")
	prompt.WriteString("Priorize os resultados dinâmicos pois são mais relevantes para a pergunta específica.\n")
	prompt.WriteString("Use os insights pré-calculados para complementar sua resposta com contexto adicional.\n\n")
	prompt.WriteString("Formate os valores em reais (R$) com duas casas decimais e separadores de milhar.\n")
	prompt.WriteString("Seja conciso e direto, destacando os pontos mais relevantes para a pergunta do usuário.")

	return prompt.String()
}

// BuildGeneralSystemPrompt creates the system prompt for the conversational
// GERAL path, which answers from the cached insight report and the session
// history instead of a fresh query.
func BuildGeneralSystemPrompt(factTable, insights string) string {
	var prompt strings.Builder

	prompt.WriteString("Você é um especialista em análise de inadimplência no Brasil. ")
	prompt.WriteString(fmt.Sprintf("Responda a pergunta do usuário com base nos dados reais da tabela '%s' ", factTable))
	prompt.WriteString("usando os insights detalhados abaixo como fonte principal. ")
	prompt.WriteString("Os insights foram gerados a partir de uma amostra dos dados reais do banco. ")
	prompt.WriteString("Se a pergunta não for respondida pelos insights, informe que mais dados são necessários e sugira verificar a fonte. ")
	prompt.WriteString("Formate os valores em reais (R$) com duas casas decimais e separadores de milhar.\n\n")
	prompt.WriteString("Insights gerados:\n")
	prompt.WriteString(insights)

	return prompt.String()
}
