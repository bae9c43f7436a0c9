package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Janelas e cadência do sampler. O retention acompanha a janela longa:
// podar abaixo dele nunca remove amostra que ainda pode ser consultada.
const (
	SampleInterval = 10 * time.Minute
	DayWindow      = 24 * time.Hour
	WeekWindow     = 7 * 24 * time.Hour
	Retention      = WeekWindow
)

// Sample é uma observação do contador ao vivo, guardada como membro de um
// sorted set com score = Timestamp.
type Sample struct {
	Timestamp int64 // epoch em milissegundos
	Value     int64
}

// Peaks é o máximo observado em cada janela.
type Peaks struct {
	Day  int64
	Week int64
}

var errMalformedMember = errors.New("malformed sample member")

// EncodeMember serializa "<timestamp>:<value>". Dígitos decimais nunca
// contêm ':', então o split de volta é sem ambiguidade.
func EncodeMember(s Sample) string {
	return strconv.FormatInt(s.Timestamp, 10) + ":" + strconv.FormatInt(s.Value, 10)
}

// ParseMember aceita exatamente dois inteiros decimais não negativos.
// Qualquer outra coisa é rejeitada (membro corrompido não derruba a consulta,
// apenas sai do cálculo).
func ParseMember(m string) (Sample, error) {
	ts, val, ok := strings.Cut(m, ":")
	if !ok {
		return Sample{}, errMalformedMember
	}
	t, err := strconv.ParseInt(ts, 10, 64)
	if err != nil || t < 0 {
		return Sample{}, errMalformedMember
	}
	v, err := strconv.ParseInt(val, 10, 64)
	if err != nil || v < 0 {
		return Sample{}, errMalformedMember
	}
	return Sample{Timestamp: t, Value: v}, nil
}

// DecodeMembers converte membros crus em Samples, descartando os malformados.
func DecodeMembers(members []string) []Sample {
	return lo.FilterMap(members, func(m string, _ int) (Sample, bool) {
		s, err := ParseMember(m)
		return s, err == nil
	})
}

// PeakOf devolve o maior valor da janela, com o valor ao vivo sempre
// participando do máximo: o pico nunca reporta menos que o contador atual.
// Valores não positivos decodificados são descartados.
func PeakOf(samples []Sample, current int64) int64 {
	values := lo.FilterMap(samples, func(s Sample, _ int) (int64, bool) {
		return s.Value, s.Value > 0
	})
	return lo.Max(append(values, current))
}
