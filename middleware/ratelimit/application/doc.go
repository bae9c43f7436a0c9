// Package application contém o caso de uso do rate limit.
//
// Ele depende apenas do pacote domain e não conhece net/http.
// Ex.: Service.Decide(key) retorna uma Admission (allow/deny + retry-after),
// sempre em modo fail-open diante de falha interna.
package application
