package ui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmarcangeli/spedman/internal/models"
	"github.com/dmarcangeli/spedman/internal/utils"
)

// Prompter reads user input line by line. It wraps an io.Reader so tests can
// script interactions.
type Prompter struct {
	reader *bufio.Reader
}

func NewPrompter(r io.Reader) *Prompter {
	return &Prompter{reader: bufio.NewReader(r)}
}

// ReadLine prints the prompt and returns one trimmed input line.
func (p *Prompter) ReadLine(prompt string) string {
	fmt.Print(prompt)
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		// EOF on stdin behaves like "go back".
		return "0"
	}
	return strings.TrimSpace(line)
}

// AskSelection prompts for a number in [0, max]; 0 means back to menu.
// Non-numeric input re-prompts.
func (p *Prompter) AskSelection(max int) int {
	var prompt string
	switch {
	case max > 1:
		prompt = fmt.Sprintf("\nScegli opzione (1-%d) o 0 per Menu: ", max)
	case max == 1:
		prompt = "\nScegli opzione (1) o 0 per Menu: "
	default:
		prompt = "\nNessuna opzione disponibile. Premi 0 per Menu: "
	}

	for {
		raw := p.ReadLine(prompt)
		n, err := strconv.Atoi(raw)
		if err != nil {
			Errorf("Inserisci un numero.")
			continue
		}
		return n
	}
}

// AskWeight prompts until a positive weight is entered, rounded up to the
// provider's half-kilogram granularity.
func (p *Prompter) AskWeight() float64 {
	for {
		raw := p.ReadLine("\nPeso del pacco (kg): ")
		raw = strings.ReplaceAll(raw, ",", ".")

		weight, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			Errorf("Peso non valido.")
			continue
		}

		rounded, err := utils.RoundWeightUp(weight)
		if err != nil {
			Errorf("Il peso deve essere positivo.")
			continue
		}

		if rounded != weight {
			Infof("Peso arrotondato a %.1f kg.", rounded)
		}
		return rounded
	}
}

// AskRecipient prompts for the full recipient address.
func (p *Prompter) AskRecipient() models.Recipient {
	return models.Recipient{
		Name:       p.ReadLine("Nome destinatario: "),
		Address:    p.ReadLine("Indirizzo: "),
		City:       p.ReadLine("Città: "),
		PostalCode: p.ReadLine("CAP: "),
		Phone:      utils.NormalizePhone(p.ReadLine("Telefono: ")),
	}
}

// AskDiscountCode prompts for an optional discount code.
func (p *Prompter) AskDiscountCode() string {
	return p.ReadLine("Codice sconto (INVIO per saltare): ")
}

// Confirm asks a yes/no question; only "s"/"si" confirm.
func (p *Prompter) Confirm(prompt string) bool {
	answer := strings.ToLower(p.ReadLine(prompt))
	return answer == "s" || answer == "si"
}

// EditRequest lets the user fix one field of the payload before retrying
// the confirmation.
func (p *Prompter) EditRequest(req *models.LabelRequest) {
	fmt.Println("\nCosa vuoi modificare?")
	fmt.Println("1) Peso")
	fmt.Println("2) Destinatario")
	fmt.Println("3) Codice sconto")
	fmt.Println("0) Nulla")

	switch p.ReadLine("Scelta: ") {
	case "1":
		req.Weight = p.AskWeight()
	case "2":
		req.Recipient = p.AskRecipient()
	case "3":
		req.DiscountCode = p.AskDiscountCode()
	}
}

// Pause waits for the user to acknowledge before the screen is cleared.
func (p *Prompter) Pause() {
	p.ReadLine("\nPremi INVIO per continuare...")
}
