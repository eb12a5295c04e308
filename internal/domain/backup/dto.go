package backup

type BackupResponse struct {
	ArchivePath string `json:"archive_path"`
	ExportPath  string `json:"export_path"`
	CreatedAt   string `json:"created_at"`
}
