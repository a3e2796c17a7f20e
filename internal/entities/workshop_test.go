package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkshopIsTerminal(t *testing.T) {
	cases := []struct {
		name     string
		terminal bool
	}{
		{"Biten İşler", true},
		{"BİTEN işler deposu", true},
		{"Bitti Rafı", true},
		{"Tamamlandı", true},
		{"Tamamlandi (eski yazım)", true},
		{"Done pile", true},
		{"Completed goods", true},
		{"Kesim Atölyesi", false},
		{"Dikim Atölyesi", false},
		{"Ütü ve Paket", false},
		{"", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := Workshop{Name: tc.name}
			assert.Equal(t, tc.terminal, w.IsTerminal())
		})
	}
}

func TestWorkshopTransferStatus(t *testing.T) {
	assert.Equal(t, StatusCompleted, Workshop{Name: "Biten İşler"}.TransferStatus())
	assert.Equal(t, StatusInProgress, Workshop{Name: "Dikim Atölyesi"}.TransferStatus())
}
