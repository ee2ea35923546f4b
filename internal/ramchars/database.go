package ramchars

import (
	"encoding/json"
	"fmt"
	"os"
)

// Settings are the printer traits that a RAM character's rendering depends
// on. Sending ESC & with different settings than the characters currently
// in RAM invalidates the whole table.
type Settings struct {
	Mode                int  `json:"mode"`
	ProportionalSpacing bool `json:"proportional_spacing"`
	Scripting           int  `json:"scripting"`
}

// entry is one row of the on-disk mapping database: the settings in effect
// when the glyph was first seen, plus the single mapped character code kept
// alongside them for a human editor's context.
//
//	"83e1a70_1": {
//	    "mode": 1,
//	    "proportional_spacing": false,
//	    "scripting": 0,
//	    "1": "�"
//	}
type entry struct {
	Settings
	Code    int
	Decoded string
}

func (e entry) MarshalJSON() ([]byte, error) {
	flat := map[string]interface{}{
		"mode":                 e.Mode,
		"proportional_spacing": e.ProportionalSpacing,
		"scripting":            e.Scripting,
		fmt.Sprintf("%d", e.Code): e.Decoded,
	}
	return json.Marshal(flat)
}

func (e *entry) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	if v, ok := flat["mode"]; ok {
		json.Unmarshal(v, &e.Mode)
	}
	if v, ok := flat["proportional_spacing"]; ok {
		json.Unmarshal(v, &e.ProportionalSpacing)
	}
	if v, ok := flat["scripting"]; ok {
		json.Unmarshal(v, &e.Scripting)
	}
	for k, v := range flat {
		switch k {
		case "mode", "proportional_spacing", "scripting":
			continue
		}
		var code int
		if _, err := fmt.Sscanf(k, "%d", &code); err != nil {
			continue
		}
		var decoded string
		if err := json.Unmarshal(v, &decoded); err != nil {
			continue
		}
		e.Code = code
		e.Decoded = decoded
	}
	return nil
}

// Database is the manual mapping file a human edits to fix the
// replacement-character placeholder a previously unseen glyph is given.
type Database struct {
	path    string
	entries map[string]entry
}

// OpenDatabase loads the JSON mapping database at path, or starts an empty
// one if it does not exist yet.
func OpenDatabase(path string) (*Database, error) {
	db := &Database{path: path, entries: map[string]entry{}}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return db, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ramchars: reading database %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &db.entries); err != nil {
		// A corrupt database is treated as empty rather than fatal: every
		// glyph just reverts to the replacement character until re-edited.
		db.entries = map[string]entry{}
	}

	return db, nil
}

// Lookup returns the manually-assigned decoding for a glyph hash + code, or
// the replacement character with ok=false if this is the first time the
// glyph has been seen (and records a fresh entry so save persists it).
func (d *Database) Lookup(glyphHash string, code byte, s Settings) (decoded string, ok bool) {
	key := fmt.Sprintf("%s_%d", glyphHash, code)
	if e, found := d.entries[key]; found {
		return e.Decoded, true
	}

	d.entries[key] = entry{Settings: s, Code: int(code), Decoded: "�"}
	return "�", false
}

// Save persists the database back to disk, indented for manual editing.
func (d *Database) Save() error {
	data, err := json.MarshalIndent(d.entries, "", "    ")
	if err != nil {
		return fmt.Errorf("ramchars: encoding database: %w", err)
	}
	if err := os.WriteFile(d.path, data, 0o644); err != nil {
		return fmt.Errorf("ramchars: writing database %s: %w", d.path, err)
	}
	return nil
}
