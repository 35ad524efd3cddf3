package host

import (
	"testing"

	"go.uber.org/zap"
)

func TestSetLogger_Nil(t *testing.T) {
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })

	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("Logger() is nil after SetLogger(nil)")
	}
	Logger().Debug("after nil logger", zap.Int("n", 1))
}
