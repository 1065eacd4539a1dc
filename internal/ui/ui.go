// Package ui renders the terminal surface: menu, tables and notifications.
package ui

import (
	"fmt"
	"strings"

	"github.com/dmarcangeli/spedman/internal/models"
	"github.com/dmarcangeli/spedman/internal/utils"
)

func ClearScreen() {
	// ANSI clear + home; good enough on every terminal the tool runs in.
	fmt.Print("\033[2J\033[H")
}

func PrintHeader() {
	ClearScreen()
	fmt.Println("=== SPEDIZIONE MANAGER ===")
}

func PrintMainMenu() {
	fmt.Println("\nCosa vuoi fare?")
	fmt.Println("1) Dashboard Ordini (Novità & Da Spedire)")
	fmt.Println("2) Inserisci manualmente Order ID")
	fmt.Println("3) Etichetta rapida (No eBay)")
	fmt.Println("4) Storico Spedizioni & PDF")
	fmt.Println("5) Storico Locale")
	fmt.Println("0) Esci")
}

var statusLabels = map[models.DashboardStatus]string{
	models.StatusAwaitingShipment: "DA SPEDIRE",
	models.StatusLabelCreated:     "ETICHETTA CREATA",
	models.StatusInTransit:        "IN VIAGGIO",
	models.StatusDelivered:        "CONSEGNATO",
}

// StatusLabel is the Italian display label of a dashboard status.
func StatusLabel(status models.DashboardStatus) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return string(status)
}

// PrintTransitions shows the changes detected since the previous visit.
func PrintTransitions(events []models.TransitionEvent) {
	if len(events) == 0 {
		return
	}

	fmt.Println("\nNOVITÀ DALL'ULTIMO CONTROLLO:")
	for _, event := range events {
		switch {
		case event.To == models.StatusDelivered && event.From == models.StatusInTransit && event.Buyer == "":
			fmt.Printf("   CONSEGNATO (Archiviato): %s\n", event.OrderID)
		case event.To == models.StatusDelivered:
			fmt.Printf("   CONSEGNATO: %s (%s)\n", event.OrderID, event.Title)
		case event.To == models.StatusInTransit:
			fmt.Printf("   SPEDITO: %s (%s)\n", event.OrderID, event.Title)
		default:
			fmt.Printf("   CAMBIO STATO: %s -> %s\n", event.OrderID, StatusLabel(event.To))
		}
	}
	fmt.Println(strings.Repeat("-", 60))
}

// PrintDashboard renders the numbered dashboard table grouped by status.
// Numbering is continuous across the groups so selections map 1:1 onto the
// item slice.
func PrintDashboard(items []models.DashboardItem) {
	line := strings.Repeat("=", 120)

	fmt.Println("\n" + line)
	fmt.Printf(" %-3s | %-16s | %-11s | %-15s | %-18s | %s\n",
		"#", "ID ORDINE", "DATA", "UTENTE", "STATO", "TITOLO OGGETTO")
	fmt.Println(line)

	if len(items) == 0 {
		fmt.Println(" Nessun ordine attivo (tutto spedito o vuoto).")
		fmt.Println(line)
		return
	}

	var lastStatus models.DashboardStatus
	for i, item := range items {
		if item.Status != lastStatus {
			if i > 0 {
				fmt.Println(strings.Repeat("-", 120))
			}
			fmt.Printf(" %s\n", StatusLabel(item.Status))
			lastStatus = item.Status
		}

		date := item.Date
		if item.Status != models.StatusAwaitingShipment && item.ShippedAt != "" {
			date = item.ShippedAt
		}

		note := item.Tracking
		if item.Posizione != "" {
			note = item.Posizione
		}

		fmt.Printf(" %-3d | %-16s | %-11s | %-15s | %-18s | %s\n",
			i+1, clip(item.ID, 16), date, clip(item.Buyer, 15), clip(note, 18), item.Title)
	}

	fmt.Println(line)
}

// PrintShipmentList renders the provider history page.
func PrintShipmentList(shipments []models.Shipment) {
	line := strings.Repeat("=", 100)

	fmt.Println("\n" + line)
	fmt.Printf(" %-3s | %-15s | %-16s | %-12s | %s\n", "#", "TRACKING", "DATA", "STATO", "PDF")
	fmt.Println(line)

	for i, shipment := range shipments {
		tracking := shipment.TrackingCode
		if tracking == "" {
			tracking = models.TrackingUnavailable
		}

		date := strings.ReplaceAll(clip(shipment.CreatedAt, 16), "T", " ")

		status := shipment.Status
		if status == "" {
			status = models.TrackingUnavailable
		}

		pdf := "No"
		if shipment.LabelURL != "" {
			pdf = "Si"
		}

		fmt.Printf(" %-3d | %-15s | %-16s | %-12s | %s\n", i+1, tracking, date, status, pdf)
	}

	fmt.Println(strings.Repeat("-", 100))
}

// PrintShipmentDetail shows one provider shipment with its public links.
func PrintShipmentDetail(index int, shipment models.Shipment) {
	fmt.Printf("\nDETTAGLI SPEDIZIONE #%d\n", index)
	fmt.Printf("   Tracking:    %s\n", utils.TrackingLink(shipment.TrackingCode))
	fmt.Printf("   Stato:       %s\n", shipment.Status)
	fmt.Printf("   Peso:        %.1f kg\n", shipment.Weight)
	if shipment.LabelURL != "" {
		fmt.Printf("   Scarica PDF: %s\n", shipment.LabelURL)
	} else {
		fmt.Println("   PDF non disponibile.")
	}
}

// PrintLocalHistory renders the locally saved labels.
func PrintLocalHistory(entries []models.HistoryEntry) {
	line := strings.Repeat("=", 110)

	fmt.Println("\n" + line)
	fmt.Printf(" %-16s | %-20s | %-15s | %s\n", "DATA", "DESTINATARIO", "TRACKING", "TITOLO")
	fmt.Println(line)

	for _, entry := range entries {
		fmt.Printf(" %-16s | %-20s | %-15s | %s\n",
			entry.Date, clip(entry.Recipient, 20), entry.Tracking, clip(entry.Title, 40))
	}

	fmt.Println(line)
}

// PrintSummary shows the label payload before the confirmation step.
func PrintSummary(req models.LabelRequest, orderID string) {
	fmt.Println("\n--- RIEPILOGO SPEDIZIONE ---")
	if orderID != "" {
		fmt.Printf(" Ordine eBay:  %s\n", orderID)
	}
	fmt.Printf(" Peso:         %.1f kg\n", req.Weight)
	fmt.Printf(" Mittente:     %s, %s, %s %s\n",
		req.Sender.Name, req.Sender.Address, req.Sender.PostalCode, req.Sender.City)
	fmt.Printf(" Destinatario: %s, %s, %s %s (tel. %s)\n",
		req.Recipient.Name, req.Recipient.Address, req.Recipient.PostalCode,
		req.Recipient.City, req.Recipient.Phone)
	if req.DiscountCode != "" {
		fmt.Printf(" Sconto:       %s\n", req.DiscountCode)
	}
	fmt.Println("----------------------------")
}

func Errorf(format string, args ...interface{}) {
	fmt.Printf("❌ "+format+"\n", args...)
}

func Infof(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

func clip(value string, limit int) string {
	if runes := []rune(value); len(runes) > limit {
		return string(runes[:limit])
	}
	return value
}
