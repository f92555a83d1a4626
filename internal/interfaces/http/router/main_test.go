package router

import (
	"os"
	"testing"

	"github.com/storeboard/backend/internal/interfaces/http/middleware"
)

func TestMain(m *testing.M) {
	middleware.SetupValidator()
	os.Exit(m.Run())
}
