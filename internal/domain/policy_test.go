package domain

import "testing"

func TestDeliveryPolicyContent(t *testing.T) {
	md, html := DeliveryPolicyContent("pickup_only")
	if md == "pickup_only" {
		t.Fatal("expected the canned pickup text, not the raw sentinel")
	}
	if html != "<p>"+md+"</p>" {
		t.Fatalf("unexpected html rendering: %q", html)
	}

	custom := "We deliver nationwide within 5 business days."
	md, html = DeliveryPolicyContent(custom)
	if md != custom {
		t.Fatalf("expected free-text policy to pass through, got %q", md)
	}
	if html != "<p>"+custom+"</p>" {
		t.Fatalf("unexpected html rendering: %q", html)
	}
}

func TestBankBeneficiarySameAccount(t *testing.T) {
	a := BankBeneficiary{BankName: "GTBank", AccountNumber: "0123456789", AccountName: "Acme Ltd", IsDefault: true, ID: "a"}
	b := BankBeneficiary{BankName: "GTBank", AccountNumber: "0123456789", AccountName: "Acme Ltd", IsDefault: false, ID: "b"}
	if !a.SameAccount(b) {
		t.Fatal("expected identical external accounts to match regardless of row identity")
	}

	c := b
	c.AccountNumber = "9876543210"
	if a.SameAccount(c) {
		t.Fatal("expected differing account numbers to not match")
	}
}
