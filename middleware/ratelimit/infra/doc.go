// Package infra contém implementações concretas (infraestrutura) para os contratos
// definidos no pacote domain.
//
// Exemplos:
//   - MemoryStore: estado de janela/bloqueio por chave em memória, com janitor
//   - RedisStatsStore / MemoryStatsStore: contadores de admissão
package infra
