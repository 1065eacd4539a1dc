// Package app wires the services to the terminal surface and runs the
// interactive menu loop.
package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/dmarcangeli/spedman/internal/logger"
	"github.com/dmarcangeli/spedman/internal/models"
	"github.com/dmarcangeli/spedman/internal/services"
	"github.com/dmarcangeli/spedman/internal/ui"
	"github.com/dmarcangeli/spedman/internal/utils"
)

type Options struct {
	Sender       models.Recipient
	HistoryDays  int
	PageLimit    int
	TokenWarning string
}

type App struct {
	dashboard  *services.DashboardService
	shipments  *services.ShipmentService
	classifier *services.Classifier
	provider   models.LabelProvider
	history    models.HistoryStore
	prompter   *ui.Prompter
	opts       Options
}

func New(
	dashboard *services.DashboardService,
	shipments *services.ShipmentService,
	classifier *services.Classifier,
	provider models.LabelProvider,
	history models.HistoryStore,
	prompter *ui.Prompter,
	opts Options,
) *App {
	if opts.HistoryDays <= 0 {
		opts.HistoryDays = 30
	}
	if opts.PageLimit <= 0 {
		opts.PageLimit = 15
	}
	return &App{
		dashboard:  dashboard,
		shipments:  shipments,
		classifier: classifier,
		provider:   provider,
		history:    history,
		prompter:   prompter,
		opts:       opts,
	}
}

// Run drives the main menu until the user exits or the context is canceled.
func (a *App) Run(ctx context.Context) {
	if a.opts.TokenWarning != "" {
		ui.Errorf("%s", a.opts.TokenWarning)
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		ui.PrintHeader()
		ui.PrintMainMenu()

		choice := a.prompter.ReadLine("\nScelta (0-5): ")
		if choice != "" {
			logger.Log.Info("main menu choice", zap.String("choice", choice))
		}

		switch choice {
		case "0":
			ui.Infof("Alla prossima!")
			return
		case "1":
			a.runDashboard(ctx)
		case "2":
			a.runManualOrder(ctx)
		case "3":
			a.runLabelFlow(ctx, "", nil, "")
		case "4":
			a.runProviderHistory(ctx)
		case "5":
			a.runLocalHistory()
		default:
			ui.Errorf("Scelta non valida.")
		}
	}
}

func (a *App) runDashboard(ctx context.Context) {
	items, transitions, err := a.dashboard.Build(ctx, a.opts.HistoryDays)
	if err != nil {
		ui.Errorf("Errore caricamento ordini: %v", err)
		a.prompter.Pause()
		return
	}

	if len(transitions) > 0 {
		ui.PrintTransitions(transitions)
		a.prompter.ReadLine("Premi INVIO per vedere la tabella ordini...")
		ui.ClearScreen()
	}

	ui.PrintDashboard(items)

	if len(items) == 0 {
		a.prompter.Pause()
		return
	}

	for {
		selection := a.prompter.AskSelection(len(items))
		if selection == 0 {
			return
		}

		action := services.ResolveSelection(items, selection)
		switch action.Kind {
		case services.ActionOrder:
			recipient := action.Order.Recipient
			a.runLabelFlow(ctx, action.Order.ID, &recipient, action.Order.Title)
			return
		case services.ActionTracking:
			a.showTrackingDetail(ctx, action.Tracking)
			a.prompter.Pause()
			return
		case services.ActionTrackingUnavailable:
			ui.Errorf("Tracking non disponibile per questo ordine.")
		default:
			ui.Errorf("Numero non valido.")
		}
	}
}

func (a *App) showTrackingDetail(ctx context.Context, tracking string) {
	status, position := a.classifier.Classify(ctx, tracking)

	ui.Infof("\nTracking: %s", tracking)
	ui.Infof("   Stato: %s", ui.StatusLabel(status))
	if position != "" {
		ui.Infof("   Ultima posizione: %s", position)
	}
	ui.Infof("   Link:  %s", utils.TrackingLink(tracking))
}

func (a *App) runManualOrder(ctx context.Context) {
	orderID := a.prompter.ReadLine("Incolla Order ID eBay: ")
	if !utils.ValidOrderID(orderID) {
		ui.Errorf("Formato non valido.")
		a.prompter.Pause()
		return
	}

	ui.Infof("Order ID valido.")
	a.runLabelFlow(ctx, orderID, nil, "")
}

// runLabelFlow walks the operator through weight, recipient and
// confirmation, then creates the label. A non-empty orderID binds the label
// to a marketplace order; recipient may arrive prefilled from the dashboard.
func (a *App) runLabelFlow(ctx context.Context, orderID string, recipient *models.Recipient, title string) {
	req := models.LabelRequest{
		Weight: a.prompter.AskWeight(),
		Sender: a.opts.Sender,
	}

	if recipient != nil {
		req.Recipient = *recipient
	} else {
		req.Recipient = a.prompter.AskRecipient()
	}

	req.DiscountCode = a.prompter.AskDiscountCode()

	for {
		ui.PrintSummary(req, orderID)
		if a.prompter.Confirm("Confermi la spedizione? (S/N): ") {
			break
		}
		a.prompter.EditRequest(&req)
	}

	ui.Infof("\nGenerazione in corso...")

	result, err := a.shipments.CreateLabel(ctx, req, orderID, title)
	if err != nil {
		ui.Errorf("Errore durante il processo: %v", err)
		a.prompter.Pause()
		return
	}

	ui.Infof("Etichetta creata: %s", result.TrackingCode)

	if result.LabelURL != "" {
		if path, err := a.provider.DownloadPDF(ctx, result.LabelURL, result.TrackingCode); err != nil {
			ui.Errorf("Impossibile scaricare il PDF: %v", err)
		} else {
			ui.Infof("PDF salvato: %s", path)
		}
	}

	ui.Infof("\nOperazione conclusa con successo!")
	a.prompter.Pause()
}

func (a *App) runProviderHistory(ctx context.Context) {
	ui.Infof("\nScarico storico spedizioni...")

	shipments, err := a.shipments.ListShipments(ctx, a.opts.PageLimit)
	if err != nil {
		ui.Errorf("Errore recupero lista spedizioni: %v", err)
		a.prompter.Pause()
		return
	}
	if len(shipments) == 0 {
		ui.Errorf("Nessuna spedizione trovata.")
		a.prompter.Pause()
		return
	}

	ui.PrintShipmentList(shipments)

	for {
		selection := a.prompter.AskSelection(len(shipments))
		if selection == 0 {
			return
		}

		shipment, ok := services.ResolveShipment(shipments, selection)
		if !ok {
			ui.Errorf("Numero non valido.")
			continue
		}

		ui.PrintShipmentDetail(selection, *shipment)

		if shipment.LabelURL != "" && a.prompter.Confirm("   Vuoi riscaricare il PDF? (S/N): ") {
			if path, err := a.provider.DownloadPDF(ctx, shipment.LabelURL, shipment.TrackingCode); err != nil {
				ui.Errorf("Impossibile scaricare il PDF: %v", err)
			} else {
				ui.Infof("   PDF salvato: %s", path)
			}
		}

		a.prompter.Pause()
		return
	}
}

func (a *App) runLocalHistory() {
	entries, err := a.history.List()
	if err != nil {
		ui.Errorf("Errore lettura storico locale: %v", err)
		a.prompter.Pause()
		return
	}
	if len(entries) == 0 {
		ui.Errorf("Nessuna spedizione salvata localmente.")
		a.prompter.Pause()
		return
	}

	ui.PrintLocalHistory(entries)
	a.prompter.Pause()
}
