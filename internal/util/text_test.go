package util

import "testing"

func TestNormalizeColumn(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "Población 2018", want: "poblacion2018"},
		{input: "POBLACION_2018", want: "poblacion2018"},
		{input: "PA11_COD_ETNIA", want: "pa11codetnia"},
		{input: "  Departamento ", want: "departamento"},
		{input: "Cód. Município", want: "codmunicipio"},
	}
	for _, tc := range cases {
		if got := NormalizeColumn(tc.input); got != tc.want {
			t.Fatalf("%q: got %q want %q", tc.input, got, tc.want)
		}
	}
}

func TestMatchColumn(t *testing.T) {
	headers := []string{"COD_DPTO", "Departamento", "Municipio", "PA11_COD_ETNIA", "Población 2018"}

	cases := []struct {
		name     string
		keywords []string
		want     int
	}{
		{name: "department", keywords: []string{"departamento"}, want: 1},
		{name: "group code aliases", keywords: []string{"pa11codetnia", "codetnia"}, want: 3},
		{name: "population", keywords: []string{"poblacion", "total", "cnt"}, want: 4},
		{name: "keyword order decides", keywords: []string{"municipio", "departamento"}, want: 2},
		{name: "no match", keywords: []string{"clase"}, want: -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MatchColumn(headers, tc.keywords...); got != tc.want {
				t.Fatalf("got %d want %d", got, tc.want)
			}
		})
	}
}
