package models

type Recurso struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

type TemaTemario struct {
	TituloTemaOposicion string    `json:"titulo_tema_oposicion"`
	Recursos            []Recurso `json:"recursos"`
}

// OposicionData is one row of a user's temario dashboard.
type OposicionData struct {
	IDOposicion     int           `json:"id_oposicion"`
	TituloOposicion string        `json:"titulo_oposicion"`
	EstadoSolicitud string        `json:"estado_solicitud"`
	Temario         []TemaTemario `json:"temario"`
}

// Dashboard is the reply of /mis-temarios.
type Dashboard struct {
	DashboardData []OposicionData `json:"dashboard_data"`
}

// RecursoUpload attaches a resource to an oposicion. Exactly one of a file
// (Filename plus Data) or URL is sent.
type RecursoUpload struct {
	OposicionID int
	Titulo      string
	Filename    string
	Data        []byte
	URL         string
}
