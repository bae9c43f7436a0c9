package main

import (
	"fmt"
	"math/rand"
	"net/http"
)

// Servidor de mentira imitando a Games API, para validar o playercountd
// localmente (ROBLOX_API_URL=http://localhost:8082).
func main() {
	http.HandleFunc("/v1/games", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("universeIds")
		if id == "" {
			id = "0"
		}
		playing := 200 + rand.Intn(100)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"data":[{"id":%s,"playing":%d,"visits":123456}]}`, id, playing)
		fmt.Println("Log: Alguém consultou /v1/games, playing =", playing)
	})
	fmt.Println("Games API falsa rodando em http://localhost:8082")
	err := http.ListenAndServe(":8082", nil)
	if err != nil {
		fmt.Printf("Erro ao subir o servidor: %s\n", err)
	}
}
