// Package domain define contratos e tipos de domínio para o rate limit.
//
// Este pacote não depende de net/http nem de implementações concretas.
// A máquina de estados (Advance) é uma função pura sobre (Entry, now, Policy),
// o que permite testes de unidade sem locks nem relógio real.
package domain
