package tablature

import "testing"

func TestSaveOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []SaveOption
		want saveOptions
	}{
		{"defaults", nil, saveOptions{}},
		{"backup", []SaveOption{WithBackup(".bak")}, saveOptions{backupSuffix: ".bak"}},
		{"validation", []SaveOption{WithValidation()}, saveOptions{validate: true}},
		{"mod time", []SaveOption{WithPreserveModTime()}, saveOptions{preserveModTime: true}},
		{
			"combined",
			[]SaveOption{WithBackup(".old"), WithValidation(), WithPreserveModTime()},
			saveOptions{backupSuffix: ".old", validate: true, preserveModTime: true},
		},
		{"last backup wins", []SaveOption{WithBackup(".a"), WithBackup(".b")}, saveOptions{backupSuffix: ".b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := defaultSaveOptions()
			for _, opt := range tt.opts {
				opt(got)
			}
			if *got != tt.want {
				t.Errorf("got %+v, want %+v", *got, tt.want)
			}
		})
	}
}
