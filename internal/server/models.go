package server

// CoreAddressRequest announces a core-network (MME) address
type CoreAddressRequest struct {
	Address string `json:"address"`
}

// AttachRequest carries the subscriber identity triplet
type AttachRequest struct {
	IMSI string `json:"usim-imsi"`
	K    string `json:"usim-k"`
	OPC  string `json:"usim-opc"`
}

// HealthResponse is the health check payload
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}
