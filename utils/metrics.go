package utils

import "github.com/prometheus/client_golang/prometheus"

var (
	UploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_uploads_total",
		Help: "Upload requests by content kind and result.",
	}, []string{"kind", "result"})

	UploadBytesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_upload_bytes_total",
		Help: "Bytes written to public storage by content kind.",
	}, []string{"kind"})

	DeletesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_deletes_total",
		Help: "Delete requests by content kind and result.",
	}, []string{"kind", "result"})

	OrphansRemovedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_orphans_removed_total",
		Help: "Unreferenced files removed by the sweeper.",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(UploadsTotal, UploadBytesTotal, DeletesTotal, OrphansRemovedTotal)
}
