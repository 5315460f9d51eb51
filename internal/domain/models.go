package domain

// Machine represents a tracked piece of office equipment: a desktop,
// peripheral, or monitor. The hardware fields only make sense for the
// "máquina" category but the schema does not enforce that.
type Machine struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	MachineID   int64   `json:"machineID"` // human-assigned asset number, unique
	AgentURL    *string `json:"agentUrl,omitempty"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
	Processor   *string `json:"processor,omitempty"`
	RAM         *string `json:"ram,omitempty"`
	Storage     *string `json:"storage,omitempty"`
	Location    *string `json:"location,omitempty"`
	User        *string `json:"user,omitempty"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
	UpdatedAt   string  `json:"updatedAt,omitempty"`
}

// Chip represents a SIM chip tracked by the phone team. IP is the short
// 1-3 digit identifier written on the chip tray, not a network address.
type Chip struct {
	ID         int64  `json:"id"`
	IP         string `json:"ip"`
	Number     string `json:"number"`
	Carrier    string `json:"carrier"`
	Consultant string `json:"consultant"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// TelSystem represents one phone-system channel for a number. A number may
// have one row per channel type plus a single type-less row that carries
// pairing and battery metadata reported by the mobile agent.
type TelSystem struct {
	ID               int64   `json:"id"`
	Number           string  `json:"number"`
	Type             *string `json:"type,omitempty"`
	Consultant       *string `json:"consultant,omitempty"`
	SessionCode      *string `json:"sessionCode,omitempty"`
	SessionExpiresAt *string `json:"sessionExpiresAt,omitempty"`
	PairedAt         *string `json:"pairedAt,omitempty"`
	BatteryLevel     *int64  `json:"batteryLevel,omitempty"`
	BatteryUpdatedAt *string `json:"batteryUpdatedAt,omitempty"`
	CreatedAt        string  `json:"createdAt,omitempty"`
	UpdatedAt        string  `json:"updatedAt,omitempty"`
}

// Product is a consumable stock item (cables, adapters, toner) tracked by
// quantity and unit price, separate from the asset entities above.
type Product struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
	CreatedAt string  `json:"createdAt,omitempty"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
}

// Location is a named place machines can be assigned to. Machines reference
// locations by name only; deleting a location leaves those strings dangling.
type Location struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// User is a person machines can be assigned to. There is no authentication
// concept; users are plain directory entries.
type User struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Email     *string `json:"email,omitempty"`
	CreatedAt string  `json:"createdAt,omitempty"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
}
