package rpc

import "encoding/json"

// Torrent is a single torrent-get result entry. Only the fields the proxy
// inspects (id, downloadDir) are typed; everything else upstream sends is
// preserved verbatim in Extra and re-emitted on marshal.
type Torrent struct {
	ID          TorrentID
	DownloadDir string
	Extra       map[string]json.RawMessage
}

func (t *Torrent) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["id"]; ok {
		if err := json.Unmarshal(v, &t.ID); err != nil {
			return err
		}
		delete(raw, "id")
	}
	if v, ok := raw["downloadDir"]; ok {
		if err := json.Unmarshal(v, &t.DownloadDir); err != nil {
			return err
		}
		delete(raw, "downloadDir")
	}
	t.Extra = raw
	return nil
}

func (t Torrent) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(t.Extra)+2)
	for k, v := range t.Extra {
		out[k] = v
	}
	idJSON, err := json.Marshal(t.ID)
	if err != nil {
		return nil, err
	}
	out["id"] = idJSON
	ddJSON, err := json.Marshal(t.DownloadDir)
	if err != nil {
		return nil, err
	}
	out["downloadDir"] = ddJSON
	return json.Marshal(out)
}

// Torrents is the arguments object of a torrent-get response.
type Torrents struct {
	Torrents []Torrent
	Extra    map[string]json.RawMessage
}

func (t *Torrents) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["torrents"]; ok {
		if err := json.Unmarshal(v, &t.Torrents); err != nil {
			return err
		}
		delete(raw, "torrents")
	}
	t.Extra = raw
	return nil
}

func (t Torrents) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(t.Extra)+1)
	for k, v := range t.Extra {
		out[k] = v
	}
	listJSON, err := json.Marshal(t.Torrents)
	if err != nil {
		return nil, err
	}
	out["torrents"] = listJSON
	return json.Marshal(out)
}
