// utilitário pequeno para formatação rápida/consistente de valores numéricos em headers/logs.
//    Evita puxar fmt (que é mais “pesado” e genérico) só para formatação simples
// 	  Padroniza a conversão de duração para segundos inteiros (Retry-After exige
//        segundos, e fração arredonda para cima para não sugerir retry antes da hora)

package ratelimit

import (
	"strconv"
	"time"
)

func formatInt(v int) string { return strconv.Itoa(v) }

func formatSeconds(d time.Duration) string {
	if d <= 0 {
		return "0"
	}
	secs := int64(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	return strconv.FormatInt(secs, 10)
}
