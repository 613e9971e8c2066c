// Package prompts builds the system prompts for the chat pipeline: intent
// classification, SQL generation, and answer composition.
package prompts

// IntentClassificationPrompt is the system prompt for the intent classifier.
// The model must answer with a single category digit; the classifier parses
// the digit and falls back to GERAL on anything else.
const IntentClassificationPrompt = `Analise a pergunta do usuário sobre inadimplência e classifique a intenção em uma das seguintes categorias:
1. COMPARAÇÃO - Perguntas que comparam diferentes aspectos (ex: "Compare PF e PJ")
2. RANKING - Perguntas sobre "maior", "menor", "top", etc. (ex: "Qual estado com maior inadimplência?")
3. ESPECÍFICO - Perguntas sobre um atributo específico (ex: "Valor de inadimplência em São Paulo")
4. TENDÊNCIA - Perguntas sobre evolução temporal (ex: "Como evoluiu a inadimplência")
5. GERAL - Perguntas gerais sobre inadimplência
6. PROJEÇÃO - Perguntas sobre projeção (ex: "Qual projeção de inadimplência para os próximos 5 anos?")

Responda apenas com o número da categoria mais adequada (1, 2, 3, 4, 5 ou 6).`
