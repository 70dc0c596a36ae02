package dto

type SystemInfoResponse struct {
	OS           string `json:"os"`
	Arch         string `json:"arch"`
	GoVersion    string `json:"go_version"`
	NumCPU       int    `json:"num_cpu"`
	NumGoroutine int    `json:"num_goroutine"`
}

type ServerStatsResponse struct {
	UserCount    int64              `json:"user_count"`
	ImageCount   int64              `json:"image_count"`
	PatientCount int64              `json:"patient_count"`
	ServiceCount int64              `json:"service_count"`
	ResultCount  int64              `json:"result_count"`
	StorageUsage int64              `json:"storage_usage"`
	SystemInfo   SystemInfoResponse `json:"system_info"`
}
