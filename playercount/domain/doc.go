// Package domain define os tipos e contratos do rastreamento de picos:
// amostras com timestamp, codificação de membro do sorted set, janelas de
// agregação e as interfaces consumidas pelo tracker (fonte de contagem e
// armazenamento durável).
package domain
