package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"mental-predictor/internal/config"
	"mental-predictor/internal/feature"
	"mental-predictor/internal/form"
	"mental-predictor/internal/predict"
	"mental-predictor/internal/repository"
	"mental-predictor/internal/service"
)

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	predictor := predict.NewHTTPClient(cfg.PredictURL, cfg.PredictTimeout(), logger)
	predictionSvc := service.NewPredictionService(
		logger,
		predictor,
		service.NewMemoryPredictionCache(),
		cfg.CacheTTL(),
		repository.NewMemorySubmissionRepository(),
	)

	state := form.NewState()
	fmt.Println("===== Mental Health Prediction =====")
	fillAll(reader, state)

	for {
		printView(state.View())
		fmt.Println("[S] Submit  [E] Edit field  [N] New form  [Q] Quit")
		fmt.Print("> ")
		choice, err := reader.ReadString('\n')
		if err == io.EOF {
			return
		}
		switch strings.ToUpper(strings.TrimSpace(choice)) {
		case "S":
			// El error ya queda reflejado en la vista.
			_ = state.Submit(ctx, predictionSvc)
			view := state.View()
			if view.Error != "" {
				fmt.Println("Error:", view.Error)
			} else {
				fmt.Println("Result:", view.Result)
			}
		case "E":
			editField(reader, state)
		case "N":
			state.Reset()
			fillAll(reader, state)
		case "Q":
			return
		default:
			fmt.Println("Invalid option.")
		}
	}
}

func fillAll(reader *bufio.Reader, state *form.State) {
	for _, name := range feature.Names() {
		promptField(reader, state, name)
	}
}

func editField(reader *bufio.Reader, state *form.State) {
	names := feature.Names()
	for i, name := range names {
		fmt.Printf("[%d] %s\n", i+1, name)
	}
	fmt.Print("Field number: ")
	line, _ := reader.ReadString('\n')
	idx, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || idx < 1 || idx > len(names) {
		fmt.Println("Invalid selection.")
		return
	}
	promptField(reader, state, names[idx-1])
}

// promptField lee una linea cruda. Solo se quita el salto de linea: los
// espacios forman parte del valor.
func promptField(reader *bufio.Reader, state *form.State, name string) {
	fmt.Printf("%s [%s]: ", name, state.Value(name))
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return
	}
	line = strings.TrimRight(line, "\r\n")
	if err := state.Set(name, line); err != nil {
		fmt.Println("Error:", err)
	}
}

func printView(view form.View) {
	fmt.Println()
	for _, name := range feature.Names() {
		fmt.Printf("  %-24s %q\n", name, view.Fields[name])
	}
}
