// Package bootcapi describes the host document printed by
// `bootc status --json --format-version=1` and converts it to and from its
// validated internal form.
package bootcapi

import (
	s "github.com/Venefilyn/cockpit-bootc/schema"
)

// RootType names the document root in Registry.
const RootType = "Host"

// Registry holds every type of the host document.
var Registry = s.MustRegistry(map[string]s.Type{
	"Host": s.Object([]s.Property{
		s.Prop("apiVersion", s.String),
		s.Prop("kind", s.String),
		s.Prop("metadata", s.Optional(s.Ref("Metadata"))),
		s.Prop("spec", s.Optional(s.Ref("HostSpec"))),
		s.Prop("status", s.Optional(s.Ref("HostStatus"))),
	}, s.Any),
	"Metadata": s.Object([]s.Property{
		s.Prop("annotations", s.Optional(s.Union(s.MapOf(s.String), s.Null))),
		s.Prop("labels", s.Optional(s.Union(s.MapOf(s.String), s.Null))),
		s.Prop("name", s.Optional(s.Union(s.Null, s.String))),
		s.Prop("namespace", s.Optional(s.Union(s.Null, s.String))),
	}, s.Any),
	"HostSpec": s.Object([]s.Property{
		s.Prop("bootOrder", s.Optional(s.Ref("BootOrder"))),
		s.Prop("image", s.Optional(s.Union(s.Null, s.Ref("ImageReference")))),
	}, s.Any),
	"ImageReference": s.Object([]s.Property{
		s.Prop("image", s.String),
		s.Prop("signature", s.Optional(s.Union(s.Ref("ImageSignatureRemote"), s.Ref("ImageSignature"), s.Null))),
		s.Prop("transport", s.String),
	}, s.Any),
	"ImageSignatureRemote": s.Object([]s.Property{
		s.Prop("ostreeRemote", s.String),
	}, s.Never),
	"HostStatus": s.Object([]s.Property{
		s.Prop("booted", s.Optional(s.Union(s.Null, s.Ref("BootEntry")))),
		s.Prop("otherDeployments", s.Optional(s.Array(s.Ref("BootEntry")))),
		s.Prop("rollback", s.Optional(s.Union(s.Null, s.Ref("BootEntry")))),
		s.Prop("rollbackQueued", s.Optional(s.Boolean)),
		s.Prop("staged", s.Optional(s.Union(s.Null, s.Ref("BootEntry")))),
		s.Prop("type", s.Optional(s.Union(s.Ref("HostType"), s.Null))),
	}, s.Any),
	"BootEntry": s.Object([]s.Property{
		s.Prop("cachedUpdate", s.Optional(s.Union(s.Null, s.Ref("ImageStatus")))),
		s.Prop("composefs", s.Optional(s.Union(s.Null, s.Ref("BootEntryComposefs")))),
		s.Prop("image", s.Optional(s.Union(s.Null, s.Ref("ImageStatus")))),
		s.Prop("incompatible", s.Boolean),
		s.Prop("ostree", s.Optional(s.Union(s.Null, s.Ref("BootEntryOstree")))),
		s.Prop("pinned", s.Boolean),
		s.Prop("softRebootCapable", s.Optional(s.Boolean)),
		s.Prop("store", s.Optional(s.Union(s.Ref("Store"), s.Null))),
	}, s.Any),
	"ImageStatus": s.Object([]s.Property{
		s.Prop("architecture", s.String),
		s.Prop("image", s.Ref("ImageReference")),
		s.Prop("imageDigest", s.String),
		s.Prop("timestamp", s.Optional(s.Union(s.DateTime, s.Null))),
		s.Prop("version", s.Optional(s.Union(s.Null, s.String))),
	}, s.Any),
	"BootEntryComposefs": s.Object([]s.Property{
		s.Prop("bootloader", s.Ref("Bootloader")),
		s.Prop("bootType", s.Ref("BootType")),
		s.Prop("verity", s.String),
	}, s.Any),
	"BootEntryOstree": s.Object([]s.Property{
		s.Prop("checksum", s.String),
		s.Prop("deploySerial", s.Number),
		s.Prop("stateroot", s.String),
	}, s.Any),

	// The staged or booted deployment boots next (default) or the
	// rollback deployment does.
	"BootOrder":      s.Enum("default", "rollback"),
	"ImageSignature": s.Enum("containerPolicy", "insecure"),
	"BootType":       s.Enum("Bls", "Uki"),
	"Bootloader":     s.Enum("Grub", "Systemd"),
	"Store":          s.Enum("ostreeContainer"),
	// Not exhaustive upstream; new variants may appear in later versions.
	"HostType": s.Enum("bootcHost"),
})
