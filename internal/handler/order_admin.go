package handler

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"
	"gropower-backend/internal/domain"
	"gropower-backend/internal/repository"
)

type OrderAdminHandler struct {
	Repo repository.OrderRepository
}

func (h OrderAdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/admin/orders", h.list)
	r.Get("/admin/orders/export", h.export)
	r.Get("/admin/orders/user/{userID}", h.listByUser)
	r.Put("/admin/orders/{id}/status", h.updateStatus)
	r.Put("/admin/orders/{id}/balance", h.updateBalance)
}

func (h OrderAdminHandler) list(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonthQuery(r, "month")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month")
		return
	}
	var orders []domain.Order
	if month != nil {
		orders, err = h.Repo.ListByMonth(r.Context(), *month)
	} else {
		orders, err = h.Repo.ListAll(r.Context(), 500)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h OrderAdminHandler) listByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	orders, err := h.Repo.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h OrderAdminHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	status := domain.OrderStatus(req.Status)
	if !domain.ValidOrderStatus(status) {
		writeError(w, http.StatusBadRequest, "status must be pending, confirmed or canceled")
		return
	}
	if err := h.Repo.UpdateStatus(r.Context(), id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	order, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(*order))
}

func (h OrderAdminHandler) updateBalance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	var req struct {
		Balance *int64 `json:"balance"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Balance == nil {
		writeError(w, http.StatusBadRequest, "balance is required")
		return
	}
	if *req.Balance < 0 {
		writeError(w, http.StatusBadRequest, "balance must not be negative")
		return
	}
	if err := h.Repo.UpdateBalance(r.Context(), id, *req.Balance); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	order, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(*order))
}

func (h OrderAdminHandler) export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	month, err := parseMonthQuery(r, "month")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month")
		return
	}

	var orders []domain.Order
	if month != nil {
		orders, err = h.Repo.ListByMonth(r.Context(), *month)
	} else {
		orders, err = h.Repo.ListAll(r.Context(), 5000)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	filenameSuffix := time.Now().Format("20060102_150405")
	if month != nil {
		filenameSuffix = month.Format("200601")
	}

	switch format {
	case "csv":
		data, err := exportOrdersCSV(orders)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"orders_%s.csv\"", filenameSuffix))
		_, _ = w.Write(data)
	case "xlsx", "excel":
		data, err := exportOrdersXLSX(orders)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"orders_%s.xlsx\"", filenameSuffix))
		_, _ = w.Write(data)
	default:
		writeError(w, http.StatusBadRequest, "invalid format (use csv or xlsx)")
	}
}

func exportOrdersCSV(orders []domain.Order) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"id", "product", "quantity", "total_amount", "transaction_id", "buyer", "email", "call_number", "status", "balance", "created_at"})
	for _, o := range orders {
		_ = w.Write([]string{
			strconv.FormatInt(o.ID, 10),
			o.ProductName,
			strconv.Itoa(o.Quantity),
			strconv.FormatInt(o.TotalAmount.Amount, 10),
			o.TransactionID,
			o.Buyer.Name,
			o.Buyer.Email,
			o.Buyer.CallNumber,
			string(o.Status),
			strconv.FormatInt(o.Balance.Amount, 10),
			o.CreatedAt.UTC().Format("2006-01-02 15:04"),
		})
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func exportOrdersXLSX(orders []domain.Order) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Orders"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{"ID", "Product", "Quantity", "Total Amount", "Transaction ID", "Buyer", "Email", "Call Number", "Status", "Balance", "Created At"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for r, o := range orders {
		row := r + 2
		values := []any{
			o.ID,
			o.ProductName,
			o.Quantity,
			o.TotalAmount.Amount,
			o.TransactionID,
			o.Buyer.Name,
			o.Buyer.Email,
			o.Buyer.CallNumber,
			string(o.Status),
			o.Balance.Amount,
			o.CreatedAt.UTC().Format("2006-01-02 15:04"),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 10)
	_ = f.SetColWidth(sheet, "B", "B", 28)
	_ = f.SetColWidth(sheet, "C", "C", 10)
	_ = f.SetColWidth(sheet, "D", "D", 14)
	_ = f.SetColWidth(sheet, "E", "E", 20)
	_ = f.SetColWidth(sheet, "F", "F", 24)
	_ = f.SetColWidth(sheet, "G", "G", 28)
	_ = f.SetColWidth(sheet, "H", "H", 16)
	_ = f.SetColWidth(sheet, "I", "I", 12)
	_ = f.SetColWidth(sheet, "J", "J", 14)
	_ = f.SetColWidth(sheet, "K", "K", 18)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheet, "A1", "K1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
