package bootcapi

import (
	"time"

	"github.com/goccy/go-json"
)

// Host is the typed view of a validated host document. Keys outside the
// schema are dropped here; the dynamic value from Parse keeps them.
type Host struct {
	APIVersion string      `json:"apiVersion"`
	Kind       string      `json:"kind"`
	Metadata   *Metadata   `json:"metadata,omitempty"`
	Spec       *HostSpec   `json:"spec,omitempty"`
	Status     *HostStatus `json:"status,omitempty"`
}

type Metadata struct {
	Annotations map[string]string `json:"annotations,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
	Name        *string           `json:"name,omitempty"`
	Namespace   *string           `json:"namespace,omitempty"`
}

// HostSpec is the desired state of the host.
type HostSpec struct {
	// BootOrder is "rollback" when the rollback deployment is set to boot
	// next.
	BootOrder string          `json:"bootOrder,omitempty"`
	Image     *ImageReference `json:"image,omitempty"`
}

// ImageReference is a container image with its transport and signature
// verification.
type ImageReference struct {
	Image     string `json:"image"`
	Transport string `json:"transport"`
	// Signature is nil, the string "containerPolicy" or "insecure", or a
	// map holding "ostreeRemote".
	Signature any `json:"signature,omitempty"`
}

// OstreeRemote returns the remote used for signature verification, if any.
func (r *ImageReference) OstreeRemote() string {
	if m, ok := r.Signature.(map[string]any); ok {
		s, _ := m["ostreeRemote"].(string)
		return s
	}
	return ""
}

type HostStatus struct {
	Booted           *BootEntry  `json:"booted,omitempty"`
	Staged           *BootEntry  `json:"staged,omitempty"`
	Rollback         *BootEntry  `json:"rollback,omitempty"`
	OtherDeployments []BootEntry `json:"otherDeployments,omitempty"`
	RollbackQueued   bool        `json:"rollbackQueued,omitempty"`
	Type             *string     `json:"type,omitempty"`
}

// BootEntry is one bootable deployment.
type BootEntry struct {
	Image             *ImageStatus `json:"image,omitempty"`
	CachedUpdate      *ImageStatus `json:"cachedUpdate,omitempty"`
	Incompatible      bool         `json:"incompatible"`
	Pinned            bool         `json:"pinned"`
	SoftRebootCapable bool         `json:"softRebootCapable,omitempty"`
	Store             *string      `json:"store,omitempty"`
	Ostree            *Ostree      `json:"ostree,omitempty"`
	Composefs         *Composefs   `json:"composefs,omitempty"`
}

// ImageStatus is the fetched state of an image.
type ImageStatus struct {
	Image        ImageReference `json:"image"`
	Version      *string        `json:"version,omitempty"`
	Timestamp    *time.Time     `json:"timestamp,omitempty"`
	ImageDigest  string         `json:"imageDigest"`
	Architecture string         `json:"architecture"`
}

type Ostree struct {
	Checksum string `json:"checksum"`
	// DeploySerial keeps the number text as validated; any JSON number
	// passes the schema.
	DeploySerial json.Number `json:"deploySerial"`
	Stateroot    string      `json:"stateroot"`
}

// Serial returns DeploySerial as an integer. It fails for fractional or
// out-of-range values.
func (o *Ostree) Serial() (int64, error) {
	return o.DeploySerial.Int64()
}

type Composefs struct {
	Bootloader string `json:"bootloader"`
	BootType   string `json:"bootType"`
	Verity     string `json:"verity"`
}

// Deployment labels a boot entry with its role.
type Deployment struct {
	Role  string // "booted", "staged", "rollback" or "other"
	Entry *BootEntry
}

// Deployments lists the present boot entries: booted, staged, rollback,
// then the others in document order.
func (s *HostStatus) Deployments() []Deployment {
	if s == nil {
		return nil
	}
	var out []Deployment
	for _, d := range []Deployment{{"booted", s.Booted}, {"staged", s.Staged}, {"rollback", s.Rollback}} {
		if d.Entry != nil {
			out = append(out, d)
		}
	}
	for i := range s.OtherDeployments {
		out = append(out, Deployment{Role: "other", Entry: &s.OtherDeployments[i]})
	}
	return out
}

// BootedImage returns the image reference of the booted deployment, or ""
// when the host is not bootc compatible.
func (h *Host) BootedImage() string {
	if h.Status == nil || h.Status.Booted == nil || h.Status.Booted.Image == nil {
		return ""
	}
	return h.Status.Booted.Image.Image.Image
}
