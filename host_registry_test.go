package aurio

import "testing"

type stubHost struct {
	id        HostID
	available bool
}

func (s *stubHost) ID() HostID                        { return s.id }
func (s *stubHost) IsAvailable() bool                 { return s.available }
func (s *stubHost) Devices() ([]Device, error)        { return nil, nil }
func (s *stubHost) DeviceByID(DeviceID) (Device, bool) { return nil, false }
func (s *stubHost) DefaultInputDevice() (Device, bool) { return nil, false }
func (s *stubHost) DefaultOutputDevice() (Device, bool) { return nil, false }

// a HostID value outside the enum, reserved for this test file so it
// never collides with a real hosts/* package's registration.
const testOnlyHostID HostID = 250

func TestRegisterHost_AndHostFromID(t *testing.T) {
	RegisterHost(testOnlyHostID, func() (Host, error) {
		return &stubHost{id: testOnlyHostID, available: true}, nil
	})

	h, err := HostFromID(testOnlyHostID)
	if err != nil {
		t.Fatalf("HostFromID() error = %v", err)
	}
	if h.ID() != testOnlyHostID {
		t.Errorf("HostFromID().ID() = %v, want %v", h.ID(), testOnlyHostID)
	}
}

func TestHostFromID_Unregistered(t *testing.T) {
	const neverRegistered HostID = 251
	if _, err := HostFromID(neverRegistered); err == nil {
		t.Error("HostFromID(unregistered) error = nil, want ErrHostUnavailable")
	}
}

func TestAllHosts_IsDistinctFromAvailableHosts(t *testing.T) {
	if len(AllHosts) == 0 {
		t.Fatal("AllHosts is empty")
	}
	for _, id := range []HostID{Asio, CoreAudio, Wasapi, Alsa, Null} {
		found := false
		for _, h := range AllHosts {
			if h == id {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("AllHosts does not contain %v", id)
		}
	}
}

func TestAvailableHosts_IncludesRegistered(t *testing.T) {
	RegisterHost(testOnlyHostID, func() (Host, error) {
		return &stubHost{id: testOnlyHostID, available: true}, nil
	})

	found := false
	for _, id := range AvailableHosts() {
		if id == testOnlyHostID {
			found = true
		}
	}
	if !found {
		t.Error("AvailableHosts() does not include a host registered via RegisterHost")
	}
}
