package models

import "testing"

func TestCreateChannelRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateChannelRequest
		wantErr bool
	}{
		{"valid text", CreateChannelRequest{Name: "sohbet", Type: "text"}, false},
		{"valid audio", CreateChannelRequest{Name: "toplantı odası", Type: "audio"}, false},
		{"valid video", CreateChannelRequest{Name: "yayın-1", Type: "video"}, false},
		{"reserved name", CreateChannelRequest{Name: "general", Type: "text"}, true},
		{"reserved name mixed case", CreateChannelRequest{Name: "GeNeRaL", Type: "text"}, true},
		{"reserved name padded", CreateChannelRequest{Name: "  general ", Type: "text"}, true},
		{"empty name", CreateChannelRequest{Name: "   ", Type: "text"}, true},
		{"invalid type", CreateChannelRequest{Name: "sohbet", Type: "podcast"}, true},
		{"invalid chars", CreateChannelRequest{Name: "sohbet/özel", Type: "text"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestChannelTypeValid(t *testing.T) {
	for _, ct := range []ChannelType{ChannelTypeText, ChannelTypeAudio, ChannelTypeVideo} {
		if !ct.Valid() {
			t.Errorf("%s.Valid() = false", ct)
		}
	}
	if ChannelType("podcast").Valid() {
		t.Error("podcast accepted as channel type")
	}
}
