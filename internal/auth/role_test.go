package auth

import "testing"

func Test_RoleAllowed(t *testing.T) {
	if !RoleAllowed(RoleAdmin, RoleAdmin, RoleSeller) {
		t.Error("expected Admin to be allowed in {Admin, Seller}")
	}

	if RoleAllowed(RoleUser, RoleAdmin, RoleSeller) {
		t.Error("expected User to be denied in {Admin, Seller}")
	}

	// empty allow list denies everyone
	if RoleAllowed(RoleAdmin) {
		t.Error("expected empty allow list to deny")
	}
}

func Test_ValidRole(t *testing.T) {
	for _, role := range []string{RoleUser, RoleSeller, RoleAdmin} {
		if !ValidRole(role) {
			t.Errorf("expected %q to be a valid role", role)
		}
	}

	if ValidRole("SuperAdmin") {
		t.Error("expected unknown role to be invalid")
	}
	if ValidRole("admin") {
		t.Error("role names are case sensitive")
	}
}

func Test_password_hashAndCompare(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !ComparePassword(hash, "s3cret-pass") {
		t.Error("expected matching password to compare true")
	}
	if ComparePassword(hash, "wrong-pass") {
		t.Error("expected wrong password to compare false")
	}
}
