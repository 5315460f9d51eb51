package domain

import "fmt"

// Stored enum tokens. The database and the API speak the Portuguese tokens;
// English tokens exist only for UI display and are translated through the
// total mappings below.

// Machine categories.
const (
	CategoryMachine    = "máquina"
	CategoryPeripheral = "periférico"
	CategoryMonitor    = "monitor"
)

// Machine statuses.
const (
	StatusInUse       = "em uso"
	StatusMaintenance = "manutenção"
	StatusAvailable   = "disponível"
)

// MachineCategories lists the allowed machine category tokens.
var MachineCategories = []string{CategoryMachine, CategoryPeripheral, CategoryMonitor}

// MachineStatuses lists the allowed machine status tokens.
var MachineStatuses = []string{StatusInUse, StatusMaintenance, StatusAvailable}

// MachineRAMSizes lists the allowed RAM tokens for machines.
var MachineRAMSizes = []string{"4GB", "6GB", "8GB", "16GB", "32GB"}

// MachineStorageSizes lists the allowed storage tokens for machines.
var MachineStorageSizes = []string{
	"120GB SSD", "240GB SSD", "480GB SSD", "1TB SSD",
	"500GB HD", "1TB HD", "2TB HD",
}

// MachineLocations lists the allowed location tokens for machines.
var MachineLocations = []string{
	"SETOR MNT - SALA LINK", "SETOR MKT - SALA LINK", "SETOR BKO - SALA LINK",
	"OPERACIONAL", "COMERCIAL", "RH", "FINANCEIRO",
}

// ChipCarriers lists the allowed chip carrier tokens.
var ChipCarriers = []string{"Vivo", "Tim", "Claro", "Oi"}

// ChipStatuses lists the allowed chip status tokens.
var ChipStatuses = []string{
	"Ativo", "Ativo/Aracaju", "Aguardando Análise", "Banido",
	"Inativo", "Maturado", "Recarga Pendente",
}

// TelSystemTypes lists the allowed phone-system channel types.
var TelSystemTypes = []string{
	"Wtt1", "Wtt2", "Wtt1 -clone", "Wtt2 -clone", "Business", "Business -clone",
}

// InVocabulary reports whether token is one of the allowed values.
func InVocabulary(token string, vocabulary []string) bool {
	for _, v := range vocabulary {
		if v == token {
			return true
		}
	}
	return false
}

var categoryToEnglish = map[string]string{
	CategoryMachine:    "machine",
	CategoryPeripheral: "peripheral",
	CategoryMonitor:    "monitor",
}

var statusToEnglish = map[string]string{
	StatusInUse:       "in-use",
	StatusMaintenance: "maintenance",
	StatusAvailable:   "available",
}

var categoryFromEnglish = invert(categoryToEnglish)
var statusFromEnglish = invert(statusToEnglish)

func invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// CategoryToEnglish translates a stored category token to its English UI
// token. Unmapped input is an error, never a passthrough.
func CategoryToEnglish(token string) (string, error) {
	return translate(token, categoryToEnglish, "category")
}

// CategoryFromEnglish translates an English UI category token back to the
// stored token.
func CategoryFromEnglish(token string) (string, error) {
	return translate(token, categoryFromEnglish, "category")
}

// StatusToEnglish translates a stored status token to its English UI token.
func StatusToEnglish(token string) (string, error) {
	return translate(token, statusToEnglish, "status")
}

// StatusFromEnglish translates an English UI status token back to the stored
// token.
func StatusFromEnglish(token string) (string, error) {
	return translate(token, statusFromEnglish, "status")
}

func translate(token string, m map[string]string, kind string) (string, error) {
	v, ok := m[token]
	if !ok {
		return "", fmt.Errorf("unknown %s token %q", kind, token)
	}
	return v, nil
}
