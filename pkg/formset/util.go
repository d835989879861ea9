package formset

import (
	"io"
	"log/slog"
	"strconv"
)

func itoa(n int) string { return strconv.Itoa(n) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
