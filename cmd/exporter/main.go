// Exporter выгружает завершённые партии из mongo в сжатый jsonl
// для анализа и обучения моделей.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/build/pargzip"

	"goban/internal/adapters"
	"goban/internal/bootstrap"
	"goban/internal/domain/board"
	gameDomain "goban/internal/domain/game"
	"goban/internal/statuses"
)

type exportRecord struct {
	PublicKey  string                 `json:"public_key"`
	BoardSize  int                    `json:"board_size"`
	Winner     string                 `json:"winner,omitempty"`
	Moves      []gameDomain.MovePoint `json:"moves"`
	Captures   gameDomain.Captures    `json:"captures"`
	Territory  gameDomain.Territory   `json:"territory"`
	CreatedAt  time.Time              `json:"created_at"`
	FinishedAt *time.Time             `json:"finished_at,omitempty"`
}

func main() {
	var outFile string
	var cfgPath string
	var workers int
	flag.StringVar(&outFile, "out", "games.jsonl.gz", "output path")
	flag.StringVar(&cfgPath, "config", ".env", "path to config file")
	flag.IntVar(&workers, "workers", 1, "number of concurrent gzip workers to use")
	flag.Parse()

	cfg, err := bootstrap.Setup(cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	mongoAdapter := adapters.NewAdapterMongo(cfg)
	if err := mongoAdapter.Init(ctx); err != nil {
		log.Fatal(err)
	}
	defer mongoAdapter.Close(ctx)

	fout, err := os.Create(outFile)
	if err != nil {
		log.Fatal(err)
	}
	defer fout.Close()

	gzipWriter := pargzip.NewWriter(fout)
	gzipWriter.Parallel = workers
	defer gzipWriter.Close()

	collection := mongoAdapter.Database.Collection("games")
	filter := bson.M{"status": statuses.StatusCompleted}
	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		log.Fatal(err)
	}
	defer cursor.Close(ctx)

	var exported, skipped int
	for cursor.Next(ctx) {
		var gameData gameDomain.Game
		if err := cursor.Decode(&gameData); err != nil {
			log.Fatal(err)
		}

		record, err := buildRecord(gameData)
		if err != nil {
			log.Printf("skip game %s: %v", gameData.PublicKey, err)
			skipped++
			continue
		}

		line, err := json.Marshal(record)
		if err != nil {
			log.Fatal(err)
		}
		if _, err := gzipWriter.Write(append(line, '\n')); err != nil {
			log.Fatal(err)
		}
		exported++
	}
	if err := cursor.Err(); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("exported %d games (%d skipped) to %s\n", exported, skipped, outFile)
}

func buildRecord(gameData gameDomain.Game) (exportRecord, error) {
	if len(gameData.FinalState) == 0 {
		return exportRecord{}, fmt.Errorf("final state is missing")
	}

	finalBoard := &board.Board{}
	if err := finalBoard.UnmarshalBinary(gameData.FinalState); err != nil {
		return exportRecord{}, fmt.Errorf("decode final state: %w", err)
	}

	boardMoves := finalBoard.Moves()
	moves := make([]gameDomain.MovePoint, len(boardMoves))
	for i, p := range boardMoves {
		moves[i] = gameDomain.MovePoint{X: int(p.X), Y: int(p.Y)}
	}

	scores := finalBoard.Scores()
	territory := finalBoard.Territory()

	return exportRecord{
		PublicKey: gameData.PublicKey,
		BoardSize: finalBoard.Size(),
		Winner:    gameData.Winner,
		Moves:     moves,
		Captures: gameDomain.Captures{
			Black: scores[board.Black],
			White: scores[board.White],
		},
		Territory: gameDomain.Territory{
			Neutral: territory[board.Empty],
			Black:   territory[board.Black],
			White:   territory[board.White],
		},
		CreatedAt:  gameData.CreatedAt,
		FinishedAt: gameData.FinishedAt,
	}, nil
}
