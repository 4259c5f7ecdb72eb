package chat

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/vbonduro/fruitchat/internal/domain"
	"github.com/vbonduro/fruitchat/internal/label"
	"github.com/vbonduro/fruitchat/internal/llm"
	"github.com/vbonduro/fruitchat/internal/session"
	"github.com/vbonduro/fruitchat/internal/speech"
	"github.com/vbonduro/fruitchat/internal/vision"
)

// NoQuestionAnswer is printed when a voice turn produced no transcript.
const NoQuestionAnswer = "No question detected."

// Resolver is the knowledge-resolution seam consumed by the loop.
type Resolver interface {
	Resolve(ctx context.Context, name string) (*domain.FruitRecord, error)
}

// Dispatcher is the question-answering seam consumed by the loop.
type Dispatcher interface {
	Answer(ctx context.Context, rec *domain.FruitRecord, question string) string
}

// LoopConfig bundles the loop's collaborators. Recorder and Transcriber are
// optional; without them the voice command reports that voice input is not
// configured.
type LoopConfig struct {
	Classifier     vision.Classifier
	Normalizer     *label.Normalizer
	Resolver       Resolver
	Dispatcher     Dispatcher
	State          *session.State
	Generator      llm.Generator
	Recorder       speech.Recorder
	Transcriber    speech.Transcriber
	TargetLanguage string
}

// Loop drives the interactive conversation: identify a fruit from an image,
// resolve its record, then answer questions until the user switches fruit or
// quits. All pipeline failures degrade to printed text; only input exhaustion
// ends the loop.
type Loop struct {
	console *Console
	cfg     LoopConfig
	logger  *slog.Logger
}

func NewLoop(console *Console, cfg LoopConfig, logger *slog.Logger) *Loop {
	return &Loop{
		console: console,
		cfg:     cfg,
		logger:  logger.With("session_id", uuid.NewString()),
	}
}

func (l *Loop) Run(ctx context.Context) error {
	l.console.Println("Welcome to the Fruit Information System!")

	for {
		path, ok := l.console.Prompt("\nEnter image path (or type 'exit' to quit): ")
		if !ok {
			return nil
		}
		path = strings.TrimSpace(path)

		switch strings.ToLower(path) {
		case "":
			continue
		case "exit":
			l.console.Println("Goodbye!")
			return nil
		}

		rec := l.startConversation(ctx, path)
		if rec == nil {
			continue
		}
		if !l.converse(ctx, rec) {
			return nil
		}
	}
}

// startConversation identifies and resolves the fruit in the image at path,
// makes it the active subject, and prints its record. A nil return means the
// failure was already reported to the user.
func (l *Loop) startConversation(ctx context.Context, path string) *domain.FruitRecord {
	name, err := l.identify(ctx, path)
	if err != nil {
		return nil
	}

	rec, err := l.cfg.Resolver.Resolve(ctx, name)
	if err != nil {
		l.logger.Info("resolution failed", "fruit", name, "error", err)
		l.console.Printf("Sorry, no information is available for '%s'. Please try another fruit.\n", name)
		return nil
	}

	l.cfg.State.SetActiveFruit(rec.Name)
	l.logger.Info("fruit resolved", "fruit", rec.Name)
	l.display(rec)
	return rec
}

// identify classifies the image and validates the label, allowing one manual
// correction before giving up.
func (l *Loop) identify(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		l.console.Printf("Cannot find image %q. Please check the path.\n", path)
		return "", err
	}
	defer f.Close()

	raw, err := l.cfg.Classifier.Classify(ctx, f, mimeTypeFor(path))
	if err != nil {
		l.logger.Warn("classification failed", "path", path, "error", err)
		l.console.Println("Fruit recognition failed.")
		return "", err
	}

	name, err := l.cfg.Normalizer.Normalize(raw)
	if err == nil {
		if l.console.Confirm(fmt.Sprintf("Model recognized: %s. Is this correct?", name)) {
			return name, nil
		}
	} else {
		l.console.Printf("Recognition result %q is not on the allowed list.\n", label.Clean(raw))
	}

	manual, ok := l.console.Prompt(fmt.Sprintf(
		"Enter the correct fruit name (%s): ", strings.Join(l.cfg.Normalizer.Allowed(), ", ")))
	if !ok {
		return "", label.ErrUnrecognized
	}
	name, err = l.cfg.Normalizer.Normalize(manual)
	if err != nil {
		l.console.Println("That fruit is not recognized. Please try again with another image.")
		return "", err
	}
	return name, nil
}

func (l *Loop) display(rec *domain.FruitRecord) {
	l.console.Println("\nFruit Information:")
	l.console.Printf("  Name: %s\n", rec.Name)
	l.console.Printf("  Nutrition: %s\n", rec.Nutrition)
	l.console.Printf("  Health Benefits: %s\n", rec.HealthBenefits)
}

// converse runs the QA loop for the active fruit. It returns false when the
// whole program should exit and true to start over with a new image.
func (l *Loop) converse(ctx context.Context, rec *domain.FruitRecord) bool {
	l.console.Println("\nConversation started.")
	l.console.Println("Type 'help' for suggested questions, 'change_image <path>' to switch image,")
	l.console.Println("'new_image' to start over, 'voice' to ask by voice, or 'exit' to quit.")

	for {
		input, ok := l.console.Prompt("\nYou: ")
		if !ok {
			return false
		}
		input = strings.TrimSpace(input)
		lower := strings.ToLower(input)

		switch {
		case input == "":
			continue
		case lower == "exit" || lower == "quit" || lower == "bye":
			l.console.Println("Thank you for using. See you next time!")
			return false
		case lower == "new_image":
			return true
		case lower == "help":
			l.console.Println("Suggested questions: 'calories', 'vitamins', 'health benefits', or any general question.")
		case strings.HasPrefix(lower, "change_image"):
			path := strings.TrimSpace(input[len("change_image"):])
			if path == "" {
				l.console.Println("Usage: change_image <path>")
				continue
			}
			if newRec := l.startConversation(ctx, path); newRec != nil {
				rec = newRec
				l.console.Println("Fruit switched. You can now ask questions about the new fruit!")
			}
		case lower == "voice":
			l.voiceTurn(ctx, rec)
		default:
			l.respond(ctx, rec, input)
		}
	}
}

func (l *Loop) respond(ctx context.Context, rec *domain.FruitRecord, question string) {
	answer := l.cfg.Dispatcher.Answer(ctx, rec, question)

	if l.cfg.TargetLanguage != "" && l.cfg.Generator != nil {
		translated, err := llm.Translate(ctx, l.cfg.Generator, answer, l.cfg.TargetLanguage)
		if err != nil {
			l.logger.Warn("translation failed", "error", err)
		} else {
			answer = translated
		}
	}

	l.console.Printf("AI: %s\n", answer)
}

// voiceTurn records and transcribes one spoken question. An empty transcript
// is "no question asked" and leaves the session history untouched.
func (l *Loop) voiceTurn(ctx context.Context, rec *domain.FruitRecord) {
	if l.cfg.Recorder == nil || l.cfg.Transcriber == nil {
		l.console.Println("Voice input is not configured.")
		return
	}

	l.console.Println("Speak your question...")
	audio, err := l.cfg.Recorder.Record(ctx)
	if err != nil {
		l.logger.Warn("recording failed", "error", err)
		l.console.Println("Recording failed.")
		return
	}

	text, err := l.cfg.Transcriber.Transcribe(ctx, audio, "audio/wav")
	if err != nil {
		l.logger.Warn("transcription failed", "error", err)
		l.console.Println("Speech recognition failed.")
		return
	}
	if strings.TrimSpace(text) == "" {
		l.console.Println(NoQuestionAnswer)
		return
	}

	l.console.Printf("Heard: %s\n", text)
	l.respond(ctx, rec, text)
}

func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
