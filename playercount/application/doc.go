// Package application contém o caso de uso do rastreador de picos:
// gravar amostras com cadência própria, podar o horizonte de retenção e
// responder o máximo das janelas de 24h e 7 dias, sempre degradando para o
// valor ao vivo diante de falha do armazenamento.
package application
