// Package playercount expõe os handlers HTTP do serviço: o endpoint de
// leitura do contador com picos de 24h/7d e o healthcheck.
//
// Visão geral (camadas):
//
//   - domain: amostras, codificação de membro, janelas e contratos
//   - application: o tracker (grava/poda/consulta com degradação explícita)
//   - infra: Redis, fallback em memória e o cliente da Games API
//   - playercount (este pacote): handlers + tradução para status/JSON
package playercount
