package routes

import (
	"github.com/ubg-fkdk/portal/config"
	"github.com/ubg-fkdk/portal/models"
	"github.com/ubg-fkdk/portal/utils"
)

// Storage holds the three public upload folders.
type Storage struct {
	Berkas     utils.UploadDir
	Dosen      utils.UploadDir
	Pengumuman utils.UploadDir
}

// NewStorage lays the folders out under cfg.PublicDir with their size ceilings.
func NewStorage(cfg config.AppConfig) Storage {
	return Storage{
		Berkas:     utils.UploadDir{Root: cfg.PublicDir, Sub: "berkas", MaxSize: config.MaxBytes(cfg.BerkasMaxMB)},
		Dosen:      utils.UploadDir{Root: cfg.PublicDir, Sub: "dosen", MaxSize: config.MaxBytes(cfg.DosenMaxMB)},
		Pengumuman: utils.UploadDir{Root: cfg.PublicDir, Sub: "pengumuman", MaxSize: config.MaxBytes(cfg.PengumumanMaxMB)},
	}
}

func (s Storage) dirs() []utils.UploadDir {
	return []utils.UploadDir{s.Berkas, s.Dosen, s.Pengumuman}
}

// Ensure creates every folder, stopping at the first failure.
func (s Storage) Ensure() error {
	for _, d := range s.dirs() {
		if err := d.Ensure(); err != nil {
			return err
		}
	}
	return nil
}

// Prefixes returns the URL prefixes the folders are served under.
func (s Storage) Prefixes() []string {
	out := make([]string, 0, 3)
	for _, d := range s.dirs() {
		out = append(out, d.Prefix())
	}
	return out
}

// SweepTargets tells the orphan sweeper which column references each folder.
func (s Storage) SweepTargets() []utils.SweepTarget {
	return []utils.SweepTarget{
		{Dir: s.Berkas, Model: &models.Berkas{}, Column: "filepath"},
		{Dir: s.Dosen, Model: &models.Dosen{}, Column: "foto"},
		{Dir: s.Pengumuman, Model: &models.Pengumuman{}, Column: "file_path"},
	}
}
