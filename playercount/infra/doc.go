// Package infra contém as implementações concretas dos contratos do tracker:
//
//   - RedisSampleStore: sorted set + scalar no Redis, timeout por operação
//   - MemorySampleStore: fallback em memória para dev/teste
//   - RobloxSource: cliente da Games API com throttle e gate de concorrência
package infra
