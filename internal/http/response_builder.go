package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"carddash/internal/core"
	"carddash/internal/dashboard"
)

// Response DTOs. Core types stay free of wire concerns; the shapes
// below are the API contract.

type moneyDTO struct {
	Cents     int64  `json:"cents"`
	Formatted string `json:"formatted"`
}

type accountDTO struct {
	ID      int64    `json:"id"`
	Owner   string   `json:"owner"`
	Code    string   `json:"code"`
	Balance moneyDTO `json:"balance"`
}

type transactionDTO struct {
	ID                 int64    `json:"id"`
	SenderAccountID    int64    `json:"senderAccountId"`
	RecipientAccountID int64    `json:"recipientAccountId"`
	Code               string   `json:"code"`
	Amount             moneyDTO `json:"amount"`
	CreatedAt          string   `json:"createdAt"`
}

type pageDTO struct {
	Transactions []transactionDTO  `json:"transactions"`
	Metadata     core.PageMetadata `json:"metadata"`
}

type dailyBalanceDTO struct {
	Day     string   `json:"day"`
	Balance moneyDTO `json:"balance"`
}

type domainDTO struct {
	Min        string `json:"min"`
	Max        string `json:"max"`
	Degenerate bool   `json:"degenerate"`
}

type historyDTO struct {
	AccountID           int64             `json:"accountId"`
	Balance             moneyDTO          `json:"balance"`
	Series              []dailyBalanceDTO `json:"series"`
	Calendar            []string          `json:"calendar"`
	Domain              domainDTO         `json:"domain"`
	StartBalance        moneyDTO          `json:"startBalance"`
	DeviationValue      moneyDTO          `json:"deviationValue"`
	DeviationPercentage string            `json:"deviationPercentage"`
}

type errorDTO struct {
	Error string `json:"error"`
}

func toMoneyDTO(m core.Money) moneyDTO {
	return moneyDTO{Cents: m.Cents, Formatted: m.Display()}
}

func toAccountDTO(a core.Account) accountDTO {
	return accountDTO{
		ID:      a.ID,
		Owner:   a.Owner,
		Code:    a.Code,
		Balance: toMoneyDTO(a.Balance),
	}
}

func toAccountDTOs(accounts []core.Account) []accountDTO {
	out := make([]accountDTO, len(accounts))
	for i, a := range accounts {
		out[i] = toAccountDTO(a)
	}
	return out
}

func toTransactionDTO(t core.Transaction) transactionDTO {
	return transactionDTO{
		ID:                 t.ID,
		SenderAccountID:    t.SenderAccountID,
		RecipientAccountID: t.RecipientAccountID,
		Code:               t.Code,
		Amount:             toMoneyDTO(t.Amount),
		CreatedAt:          t.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toTransactionDTOs(txs []core.Transaction) []transactionDTO {
	out := make([]transactionDTO, len(txs))
	for i, t := range txs {
		out[i] = toTransactionDTO(t)
	}
	return out
}

func toPageDTO(page core.TransactionPage) pageDTO {
	return pageDTO{
		Transactions: toTransactionDTOs(page.Transactions),
		Metadata:     page.Metadata,
	}
}

func toHistoryDTO(report dashboard.HistoryReport) historyDTO {
	series := make([]dailyBalanceDTO, len(report.Series))
	for i, db := range report.Series {
		series[i] = dailyBalanceDTO{Day: db.Day, Balance: toMoneyDTO(db.Balance)}
	}
	return historyDTO{
		AccountID: report.AccountID,
		Balance:   toMoneyDTO(report.Balance),
		Series:    series,
		Calendar:  report.Calendar,
		Domain: domainDTO{
			Min:        report.Domain.Min.String(),
			Max:        report.Domain.Max.String(),
			Degenerate: report.Domain.Degenerate,
		},
		StartBalance:        toMoneyDTO(report.StartBalance),
		DeviationValue:      toMoneyDTO(report.DeviationValue),
		DeviationPercentage: report.DeviationPercentage.String(),
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorDTO{Error: msg})
}
