package query

import (
	"sort"
	"testing"

	"github.com/ros2types/ros2types/internal/registry"
)

func fakeEnv(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func TestHandleEnv(t *testing.T) {
	h := NewHandler(registry.New(), WithLookupEnv(fakeEnv(map[string]string{
		"ROS_DISTRO":    "jazzy",
		"ROS_DOMAIN_ID": "7",
		"HOME":          "/root",
	})))

	tests := []struct {
		key  string
		want []string
	}{
		{"@ros2_env/ROS_DISTRO", []string{"@ros2_env/ROS_DISTRO=jazzy"}},
		{"@ros2_env/*", []string{"@ros2_env/ROS_DISTRO=jazzy", "@ros2_env/ROS_DOMAIN_ID=7"}},
		{"@ros2_env/**", []string{"@ros2_env/ROS_DISTRO=jazzy", "@ros2_env/ROS_DOMAIN_ID=7"}},
		{"@ros2_env/HOME", nil},
		{"@ros2_env/RMW_IMPLEMENTATION", nil},
		{"@ros2_env", nil},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			var buf Buffer
			n, err := h.HandleEnv(tt.key, &buf)
			if err != nil {
				t.Fatalf("HandleEnv: %v", err)
			}
			var got []string
			for _, r := range buf.Replies {
				if r.Encoding != EncodingText {
					t.Errorf("encoding = %q", r.Encoding)
				}
				got = append(got, r.Key+"="+string(r.Payload))
			}
			sort.Strings(got)
			if n != len(tt.want) || len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestHandleEnvCustomAllowList(t *testing.T) {
	h := NewHandler(registry.New(),
		WithEnvAllowList([]string{"MY_VAR", "bad/name", "MY_VAR"}),
		WithLookupEnv(fakeEnv(map[string]string{"MY_VAR": "1", "ROS_DISTRO": "jazzy"})),
	)

	var buf Buffer
	if n, err := h.HandleEnv("@ros2_env/**", &buf); err != nil || n != 1 {
		t.Fatalf("HandleEnv = %d, %v", n, err)
	}
	if buf.Replies[0].Key != "@ros2_env/MY_VAR" {
		t.Errorf("reply key = %q", buf.Replies[0].Key)
	}
}

func TestHandleEnvBadKey(t *testing.T) {
	h := NewHandler(registry.New())
	var buf Buffer
	if _, err := h.HandleEnv("@ros2_types/ROS_DISTRO", &buf); err == nil {
		t.Error("expected error for key outside the env prefix")
	}
	if buf.Err == "" {
		t.Error("expected an error reply")
	}
}
