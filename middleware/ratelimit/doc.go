// Package ratelimit fornece o adapter HTTP (net/http) para o rate limit de
// janela deslizante com escalada de bloqueio.
//
// Visão geral (camadas):
//
//   - domain: contratos e tipos do domínio (sem dependência de net/http),
//     incluindo a máquina de estados Advance
//   - application: caso de uso (decisão allow/deny, fail-open) sem net/http
//   - infra: implementações concretas (estado em memória + janitor, contadores
//     de admissão em Redis/memória)
//   - ratelimit (este pacote): middleware HTTP + extração de chave + tradução
//     para status/headers
//
// Fluxo no serviço:
//
//  1. Extrai a chave do cliente (header/XFF/IP)
//  2. Chama a camada application para obter a decisão
//  3. Se negado, responde 429 com Retry-After e corpo JSON
//  4. Se permitido, chama o próximo handler
//
// Variáveis de ambiente do binário (cmd/playercountd) controlam o comportamento,
// como RATE_ENABLED, RATE_WINDOW, RATE_MAX e RATE_BLOCK.
package ratelimit
